package domain

import "fmt"

// Recipient is a person asked to sign the document.
type Recipient struct {
	// ID is the unique identifier for the recipient.
	ID string `json:"id"`

	// Name is the display name shown on the placeholder.
	Name string `json:"name"`

	// Email is where the signing link is delivered by the external API.
	Email string `json:"email"`
}

// Validate checks that the recipient can be submitted.
func (r Recipient) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: recipient name is required", ErrInvalidInput)
	}
	if r.Email == "" {
		return fmt.Errorf("%w: recipient email is required", ErrInvalidInput)
	}
	return nil
}

// OrdinalLabel renders n as an English ordinal ("1st", "2nd", "11th").
func OrdinalLabel(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
