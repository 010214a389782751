package domain

// SignaturePlaceholder is a rectangular signature box assigned to one
// recipient. Geometry is in document space: PDF units, bottom-left origin,
// Y measured from the page bottom to the box bottom.
type SignaturePlaceholder struct {
	// ID is the unique identifier for the placeholder.
	ID string `json:"id"`

	// X is the distance from the page's left edge to the box's left edge.
	X float64 `json:"x"`

	// Y is the distance from the page's bottom edge to the box's bottom edge.
	Y float64 `json:"y"`

	// Width is the unscaled box width.
	Width float64 `json:"width"`

	// Height is the unscaled box height.
	Height float64 `json:"height"`

	// PageNumber is the 1-based page the box sits on.
	PageNumber int `json:"pageNumber"`

	// RecipientID references the Recipient who signs here.
	RecipientID string `json:"recipientId"`

	// RecipientName is a display copy of the recipient's name at creation time.
	RecipientName string `json:"recipientName"`

	// Order is the 1-based signing sequence position across all pages.
	Order int `json:"order"`
}

// Top returns the document-space Y of the box's top edge.
func (p SignaturePlaceholder) Top() float64 {
	return p.Y + p.Height
}

// Point is a position in screen space (top-left origin, scaled).
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair. Whether it is in screen or document
// units depends on context.
type Size struct {
	Width  float64
	Height float64
}

// IsKnown returns true once both dimensions are positive.
func (s Size) IsKnown() bool {
	return s.Width > 0 && s.Height > 0
}

// ScreenChange is a partial update reported by a drag or resize surface.
// All fields are in screen space; nil fields are left untouched.
type ScreenChange struct {
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
}

// MoveTo returns a change that repositions the box's top-left corner.
func MoveTo(x, y float64) ScreenChange {
	return ScreenChange{X: &x, Y: &y}
}

// ResizeTo returns a change that only alters the box size.
func ResizeTo(width, height float64) ScreenChange {
	return ScreenChange{Width: &width, Height: &height}
}

// IsEmpty returns true if the change carries no fields.
func (c ScreenChange) IsEmpty() bool {
	return c.X == nil && c.Y == nil && c.Width == nil && c.Height == nil
}
