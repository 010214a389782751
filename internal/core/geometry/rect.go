package geometry

import (
	"seehuhn.de/go/geom/rect"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// ScreenBox is a placeholder as the rendering surface sees it:
// top-left corner and size, scaled.
type ScreenBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the screen X of the right edge.
func (b ScreenBox) Right() float64 { return b.X + b.Width }

// Bottom returns the screen Y of the bottom edge.
func (b ScreenBox) Bottom() float64 { return b.Y + b.Height }

// Center returns the centre point of the box.
func (b ScreenBox) Center() domain.Point {
	return domain.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// ToScreen derives the screen box of a stored placeholder.
func ToScreen(p domain.SignaturePlaceholder, page domain.PageDims, scale float64) ScreenBox {
	tl := DocumentToScreen(p.X, p.Y, p.Height, page, scale)
	return ScreenBox{
		X:      tl.X,
		Y:      tl.Y,
		Width:  ToScreenLength(p.Width, scale),
		Height: ToScreenLength(p.Height, scale),
	}
}

// DocumentRect returns the placeholder as a PDF rectangle
// (lower-left / upper-right corners in document space).
func DocumentRect(p domain.SignaturePlaceholder) rect.Rect {
	return rect.Rect{
		LLx: p.X,
		LLy: p.Y,
		URx: p.X + p.Width,
		URy: p.Y + p.Height,
	}
}

// pageTolerance absorbs float error from screen/document round trips.
const pageTolerance = 1e-6

// WithinPage reports whether the placeholder has a positive size and lies
// entirely on the page.
func WithinPage(p domain.SignaturePlaceholder, page domain.PageDims) bool {
	r := DocumentRect(p)
	if !(r.Dx() > 0) || !(r.Dy() > 0) {
		return false
	}
	return r.LLx >= -pageTolerance && r.LLy >= -pageTolerance &&
		r.URx <= page.Width+pageTolerance && r.URy <= page.Height+pageTolerance
}
