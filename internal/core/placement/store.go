package placement

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/geometry"
)

// Store is the ordered collection of signature placeholders for one
// document. Order values are kept contiguous (1..N) across all pages.
//
// The store does not enforce one placeholder per recipient; callers consult
// a Gate first.
type Store struct {
	doc          *domain.Document
	defaultSize  domain.Size
	placeholders []domain.SignaturePlaceholder
	newID        func() string
}

// NewStore creates a store for doc seeded with existing placeholders.
// defaultSize is the screen-space size of a newly added box.
func NewStore(doc *domain.Document, defaultSize domain.Size, existing []domain.SignaturePlaceholder) *Store {
	placeholders := make([]domain.SignaturePlaceholder, len(existing))
	copy(placeholders, existing)

	return &Store{
		doc:          doc,
		defaultSize:  defaultSize,
		placeholders: placeholders,
		newID:        func() string { return uuid.New().String() },
	}
}

// WithIDGenerator replaces the ID generator. Useful for testing.
func (s *Store) WithIDGenerator(fn func() string) *Store {
	s.newID = fn
	return s
}

// Len returns the number of placeholders.
func (s *Store) Len() int {
	return len(s.placeholders)
}

// List returns a copy of all placeholders in insertion order.
func (s *Store) List() []domain.SignaturePlaceholder {
	result := make([]domain.SignaturePlaceholder, len(s.placeholders))
	copy(result, s.placeholders)
	return result
}

// Get returns the placeholder with the given ID.
func (s *Store) Get(id string) (domain.SignaturePlaceholder, bool) {
	if i := s.index(id); i >= 0 {
		return s.placeholders[i], true
	}
	return domain.SignaturePlaceholder{}, false
}

// ListForPage returns the placeholders on a page in insertion order.
func (s *Store) ListForPage(pageNumber int) []domain.SignaturePlaceholder {
	result := make([]domain.SignaturePlaceholder, 0)
	for _, p := range s.placeholders {
		if p.PageNumber == pageNumber {
			result = append(result, p)
		}
	}
	return result
}

// Add creates a default-sized placeholder centred on a screen point and
// appends it with the next order.
func (s *Store) Add(recipient domain.Recipient, pageNumber int, center domain.Point, scale float64) domain.SignaturePlaceholder {
	page, _ := s.doc.Page(pageNumber)
	scale = geometry.NormalizeScale(scale)

	width := geometry.ToDocumentLength(s.defaultSize.Width, scale)
	height := geometry.ToDocumentLength(s.defaultSize.Height, scale)

	topLeftX := center.X - s.defaultSize.Width/2
	topLeftY := center.Y - s.defaultSize.Height/2
	pos := geometry.ScreenToDocument(topLeftX, topLeftY, height, page, scale)
	pos = geometry.ClampToPage(pos.X, pos.Y, width, height, page)

	p := domain.SignaturePlaceholder{
		ID:            s.newID(),
		X:             pos.X,
		Y:             pos.Y,
		Width:         width,
		Height:        height,
		PageNumber:    pageNumber,
		RecipientID:   recipient.ID,
		RecipientName: recipient.Name,
		Order:         len(s.placeholders) + 1,
	}
	s.placeholders = append(s.placeholders, p)
	return p
}

// Update applies a screen-space change reported by a drag or resize
// surface. Each field is divided by scale. When Y is absent the stored
// bottom edge is kept, so a height change only moves the top edge. Unknown
// IDs leave the store unchanged.
func (s *Store) Update(id string, change domain.ScreenChange, scale float64) []domain.SignaturePlaceholder {
	i := s.index(id)
	if i < 0 {
		return s.List()
	}

	p := s.placeholders[i]
	page, _ := s.doc.Page(p.PageNumber)
	scale = geometry.NormalizeScale(scale)

	if change.Width != nil {
		p.Width = geometry.ToDocumentLength(*change.Width, scale)
	}
	if change.Height != nil {
		p.Height = geometry.ToDocumentLength(*change.Height, scale)
	}
	if change.X != nil {
		p.X = geometry.ToDocumentLength(*change.X, scale)
	}
	if change.Y != nil {
		// The top-left Y is only meaningful together with the (new) height.
		p.Y = geometry.ScreenToDocument(0, *change.Y, p.Height, page, scale).Y
	}

	s.placeholders[i] = p
	return s.List()
}

// Remove deletes a placeholder and closes the gap in the order sequence.
// Unknown IDs leave the store unchanged.
func (s *Store) Remove(id string) []domain.SignaturePlaceholder {
	i := s.index(id)
	if i < 0 {
		return s.List()
	}

	removed := s.placeholders[i].Order
	s.placeholders = append(s.placeholders[:i], s.placeholders[i+1:]...)
	for j := range s.placeholders {
		if s.placeholders[j].Order > removed {
			s.placeholders[j].Order--
		}
	}
	return s.List()
}

// RemoveWhere removes every placeholder matching pred, renumbering after
// each removal. It returns the number removed.
func (s *Store) RemoveWhere(pred func(domain.SignaturePlaceholder) bool) int {
	var ids []string
	for _, p := range s.placeholders {
		if pred(p) {
			ids = append(ids, p.ID)
		}
	}
	for _, id := range ids {
		s.Remove(id)
	}
	return len(ids)
}

// Reorder moves a placeholder to a new signing position, shifting the
// placeholders in between. The target is clamped to 1..N.
func (s *Store) Reorder(id string, order int) []domain.SignaturePlaceholder {
	i := s.index(id)
	if i < 0 {
		return s.List()
	}

	n := len(s.placeholders)
	if order < 1 {
		order = 1
	}
	if order > n {
		order = n
	}

	from := s.placeholders[i].Order
	for j := range s.placeholders {
		o := s.placeholders[j].Order
		switch {
		case j == i:
			s.placeholders[j].Order = order
		case from < order && o > from && o <= order:
			s.placeholders[j].Order--
		case from > order && o >= order && o < from:
			s.placeholders[j].Order++
		}
	}
	return s.List()
}

// SetDocument swaps the page geometry, e.g. after the file was rewritten.
func (s *Store) SetDocument(doc *domain.Document) {
	s.doc = doc
}

func (s *Store) index(id string) int {
	for i := range s.placeholders {
		if s.placeholders[i].ID == id {
			return i
		}
	}
	return -1
}
