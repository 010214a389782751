package placement

import (
	"math"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/geometry"
)

// CalculateOptimalZoom returns the largest scale at which the page fits the
// container, never above 1.0. It returns 1.0 while either size is unknown.
func CalculateOptimalZoom(container domain.Size, page domain.PageDims) float64 {
	if !container.IsKnown() || !page.IsKnown() {
		return 1.0
	}
	return math.Min(math.Min(container.Width/page.Width, container.Height/page.Height), 1.0)
}

// Viewport owns the zoom factor, the current page and the scroll offset of
// the rendering container.
//
// Auto-fit is applied at most once per document load. Any manual zoom
// suppresses it until the next Load.
type Viewport struct {
	zoom        domain.ZoomSettings
	scale       float64
	currentPage int
	numPages    int
	container   domain.Size
	offset      domain.Point
	autoFitted  bool
	manual      bool
}

// NewViewport creates a viewport at 100% on page 1.
func NewViewport(zoom domain.ZoomSettings) *Viewport {
	if zoom.Validate() != nil {
		zoom = domain.DefaultAppSettings().Zoom
	}
	return &Viewport{
		zoom:        zoom,
		scale:       1.0,
		currentPage: 1,
	}
}

// Load resets the viewport for a newly loaded document.
func (v *Viewport) Load(numPages int) {
	v.numPages = numPages
	v.currentPage = 1
	v.scale = 1.0
	v.offset = domain.Point{}
	v.autoFitted = false
	v.manual = false
}

// Restore applies a remembered scale and page without counting as a
// manual zoom. Values are clamped.
func (v *Viewport) Restore(scale float64, page int) {
	if scale > 0 {
		v.scale = scale
		v.autoFitted = true
	}
	v.GoTo(page)
}

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 {
	return v.scale
}

// CurrentPage returns the 1-based current page.
func (v *Viewport) CurrentPage() int {
	return v.currentPage
}

// NumPages returns the page count of the loaded document.
func (v *Viewport) NumPages() int {
	return v.numPages
}

// Container returns the container size in screen units.
func (v *Viewport) Container() domain.Size {
	return v.container
}

// SetContainer records the container size in screen units.
func (v *Viewport) SetContainer(size domain.Size) {
	v.container = size
}

// AutoFitted reports whether auto-fit already ran for this load.
func (v *Viewport) AutoFitted() bool {
	return v.autoFitted
}

// AutoFit applies the optimal zoom for page if it has not run since the
// last Load, no manual zoom happened, and both the page and container sizes
// are known. It returns true when the scale was changed.
func (v *Viewport) AutoFit(page domain.PageDims) bool {
	if v.autoFitted || v.manual {
		return false
	}
	if !page.IsKnown() || !v.container.IsKnown() {
		return false
	}
	v.scale = CalculateOptimalZoom(v.container, page)
	v.autoFitted = true
	v.offset = domain.Point{}
	return true
}

// Fit re-applies the optimal zoom on request. It counts as a manual zoom.
func (v *Viewport) Fit(page domain.PageDims) {
	v.scale = CalculateOptimalZoom(v.container, page)
	v.manual = true
	v.offset = domain.Point{}
}

// ZoomIn increases the scale by one step up to the maximum. It is a no-op
// when the scale is already at or above the maximum.
func (v *Viewport) ZoomIn() {
	if v.scale >= v.zoom.Max {
		return
	}
	v.SetScale(v.scale + v.zoom.Step)
}

// ZoomOut decreases the scale by one step down to the minimum. It is a
// no-op when the scale is already at or below the minimum.
func (v *Viewport) ZoomOut() {
	if v.scale <= v.zoom.Min {
		return
	}
	v.SetScale(v.scale - v.zoom.Step)
}

// SetScale sets a manual zoom, clamped to the configured bounds and
// rounded to hundredths. Invalid scales are treated as 1.
func (v *Viewport) SetScale(scale float64) {
	scale = math.Round(geometry.NormalizeScale(scale)*100) / 100
	v.scale = math.Min(math.Max(scale, v.zoom.Min), v.zoom.Max)
	v.manual = true
}

// Next moves to the next page. No-op on the last page.
func (v *Viewport) Next() {
	if v.currentPage < v.numPages {
		v.currentPage++
		v.offset = domain.Point{}
	}
}

// Previous moves to the previous page. No-op on the first page.
func (v *Viewport) Previous() {
	if v.currentPage > 1 {
		v.currentPage--
		v.offset = domain.Point{}
	}
}

// GoTo jumps to a page, clamped to 1..NumPages.
func (v *Viewport) GoTo(page int) {
	maxPage := v.numPages
	if maxPage < 1 {
		maxPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if page != v.currentPage {
		v.offset = domain.Point{}
	}
	v.currentPage = page
}

// Offset returns the scroll offset in screen units.
func (v *Viewport) Offset() domain.Point {
	return v.offset
}

// ScrollBy moves the scroll offset, clamped so the container never scrolls
// past the rendered page. It returns true if the offset changed.
func (v *Viewport) ScrollBy(dx, dy float64, page domain.PageDims) bool {
	rendered := geometry.ScreenPageSize(page, v.scale)
	maxX := math.Max(0, rendered.Width-v.container.Width)
	maxY := math.Max(0, rendered.Height-v.container.Height)

	next := domain.Point{
		X: math.Min(math.Max(v.offset.X+dx, 0), maxX),
		Y: math.Min(math.Max(v.offset.Y+dy, 0), maxY),
	}
	if next == v.offset {
		return false
	}
	v.offset = next
	return true
}

// VisibleCenter returns the centre of the visible part of the page in
// page-relative screen coordinates.
func (v *Viewport) VisibleCenter(page domain.PageDims) domain.Point {
	rendered := geometry.ScreenPageSize(page, v.scale)
	w := math.Min(v.container.Width, rendered.Width)
	h := math.Min(v.container.Height, rendered.Height)
	if !v.container.IsKnown() {
		w, h = rendered.Width, rendered.Height
	}
	return domain.Point{
		X: v.offset.X + w/2,
		Y: v.offset.Y + h/2,
	}
}
