package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// NormalizeScale returns scale when it is a positive finite number and 1
// otherwise, so an invalid zoom degrades to an identity transform.
func NormalizeScale(scale float64) float64 {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 1
	}
	return scale
}

// ScreenToDocument maps the top-left corner of a box in screen space to the
// bottom-left corner of the same box in document space. height is the box
// height in document units.
func ScreenToDocument(screenX, screenY, height float64, page domain.PageDims, scale float64) vec.Vec2 {
	scale = NormalizeScale(scale)
	x := screenX / scale
	y := screenY / scale
	return vec.Vec2{
		X: x,
		Y: page.Height - (y + height),
	}
}

// DocumentToScreen is the inverse of ScreenToDocument for the same height
// and scale.
func DocumentToScreen(docX, docY, height float64, page domain.PageDims, scale float64) domain.Point {
	scale = NormalizeScale(scale)
	return domain.Point{
		X: docX * scale,
		Y: (page.Height - docY - height) * scale,
	}
}

// ToDocumentLength converts a screen length to document units.
func ToDocumentLength(screen, scale float64) float64 {
	return screen / NormalizeScale(scale)
}

// ToScreenLength converts a document length to screen units.
func ToScreenLength(doc, scale float64) float64 {
	return doc * NormalizeScale(scale)
}

// ScreenPageSize returns the rendered size of a page at scale.
func ScreenPageSize(page domain.PageDims, scale float64) domain.Size {
	scale = NormalizeScale(scale)
	return domain.Size{Width: page.Width * scale, Height: page.Height * scale}
}

// ClampToPage keeps a document-space box of size w x h inside the page.
// Boxes larger than the page are pinned to the origin.
func ClampToPage(x, y, w, h float64, page domain.PageDims) vec.Vec2 {
	return vec.Vec2{
		X: clamp(x, 0, math.Max(0, page.Width-w)),
		Y: clamp(y, 0, math.Max(0, page.Height-h)),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
