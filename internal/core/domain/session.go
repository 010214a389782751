package domain

import "time"

// PlacementSession is a draft signing request: one document, its
// recipients and the placeholders positioned for them. It is discarded on
// reset or after a successful submission.
type PlacementSession struct {
	// ID is the unique identifier for the session.
	ID string `json:"id"`

	// Document is the loaded page geometry.
	Document Document `json:"document"`

	// Recipients are the signers in the order they were added.
	Recipients []Recipient `json:"recipients"`

	// Placeholders are kept in insertion order; Order carries the signing sequence.
	Placeholders []SignaturePlaceholder `json:"placeholders"`

	// Scale is the last zoom factor used to view the session.
	Scale float64 `json:"scale"`

	// CurrentPage is the last page viewed.
	CurrentPage int `json:"currentPage"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the session was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Recipient returns the recipient with the given ID.
func (s *PlacementSession) Recipient(id string) (Recipient, bool) {
	for _, r := range s.Recipients {
		if r.ID == id {
			return r, true
		}
	}
	return Recipient{}, false
}

// Placeholder returns the placeholder with the given ID.
func (s *PlacementSession) Placeholder(id string) (SignaturePlaceholder, bool) {
	for _, p := range s.Placeholders {
		if p.ID == id {
			return p, true
		}
	}
	return SignaturePlaceholder{}, false
}

// Name returns a short label for lists.
func (s *PlacementSession) Name() string {
	if s.Document.Path == "" {
		return s.ID
	}
	return s.Document.Path
}
