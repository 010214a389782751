package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

const tolerance = 1e-9

func TestNormalizeScale(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  float64
	}{
		{"positive", 1.5, 1.5},
		{"small positive", 0.01, 0.01},
		{"zero", 0, 1},
		{"negative", -2, 1},
		{"nan", math.NaN(), 1},
		{"inf", math.Inf(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeScale(tt.scale))
		})
	}
}

func TestScreenToDocument(t *testing.T) {
	page := domain.PageDims{Width: 600, Height: 800}

	got := ScreenToDocument(250, 375, 50, page, 1.0)
	assert.InDelta(t, 250, got.X, tolerance)
	assert.InDelta(t, 375, got.Y, tolerance)

	// At 2x the screen distances halve before flipping.
	got = ScreenToDocument(200, 100, 50, page, 2.0)
	assert.InDelta(t, 100, got.X, tolerance)
	assert.InDelta(t, 800-(50+50), got.Y, tolerance)
}

func TestDocumentToScreen(t *testing.T) {
	page := domain.PageDims{Width: 600, Height: 800}

	got := DocumentToScreen(100, 700, 50, page, 2.0)
	assert.InDelta(t, 200, got.X, tolerance)
	assert.InDelta(t, (800-700-50)*2, got.Y, tolerance)
}

func TestRoundTrip(t *testing.T) {
	pages := []domain.PageDims{
		{Width: 612, Height: 792},
		{Width: 595.28, Height: 841.89},
		{Width: 1600, Height: 2400},
		{Width: 1, Height: 1},
	}
	scales := []float64{0.25, 0.3, 0.75, 1, 1.1, 1.5, 2, 3.7}

	for _, page := range pages {
		for _, scale := range scales {
			for _, fx := range []float64{0, 0.1, 0.5, 0.99, 1} {
				for _, fy := range []float64{0, 0.3, 0.7, 1} {
					for _, fh := range []float64{0, 0.05, 0.5, 1} {
						sx := fx * page.Width * scale
						sy := fy * page.Height * scale
						h := fh * page.Height

						doc := ScreenToDocument(sx, sy, h, page, scale)
						back := DocumentToScreen(doc.X, doc.Y, h, page, scale)

						assert.InDelta(t, sx, back.X, 1e-6)
						assert.InDelta(t, sy, back.Y, 1e-6)
					}
				}
			}
		}
	}
}

func TestRoundTrip_DocumentFirst(t *testing.T) {
	page := domain.PageDims{Width: 600, Height: 800}

	screen := DocumentToScreen(42, 17, 30, page, 1.3)
	doc := ScreenToDocument(screen.X, screen.Y, 30, page, 1.3)

	assert.InDelta(t, 42, doc.X, 1e-9)
	assert.InDelta(t, 17, doc.Y, 1e-9)
}

func TestInvalidScale_IsIdentity(t *testing.T) {
	page := domain.PageDims{Width: 600, Height: 800}

	for _, scale := range []float64{0, -1, math.NaN()} {
		got := ScreenToDocument(10, 20, 30, page, scale)
		assert.Equal(t, 10.0, got.X)
		assert.Equal(t, 750.0, got.Y)

		back := DocumentToScreen(10, 750, 30, page, scale)
		assert.Equal(t, 10.0, back.X)
		assert.Equal(t, 20.0, back.Y)
	}
}

func TestZeroPageDims_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		got := ScreenToDocument(10, 20, 0, domain.PageDims{}, 1)
		assert.Equal(t, 10.0, got.X)
		assert.Equal(t, -20.0, got.Y)

		size := ScreenPageSize(domain.PageDims{}, 1.5)
		assert.Equal(t, domain.Size{}, size)

		pos := ClampToPage(10, 20, 100, 50, domain.PageDims{})
		assert.Equal(t, 0.0, pos.X)
		assert.Equal(t, 0.0, pos.Y)
	})
}

func TestLengths(t *testing.T) {
	assert.Equal(t, 50.0, ToDocumentLength(100, 2))
	assert.Equal(t, 200.0, ToScreenLength(100, 2))
	assert.Equal(t, 100.0, ToDocumentLength(100, 0))
}

func TestClampToPage(t *testing.T) {
	page := domain.PageDims{Width: 600, Height: 800}

	tests := []struct {
		name       string
		x, y, w, h float64
		wantX      float64
		wantY      float64
	}{
		{"inside", 10, 20, 100, 50, 10, 20},
		{"left of page", -5, 20, 100, 50, 0, 20},
		{"below page", 10, -30, 100, 50, 10, 0},
		{"past right edge", 550, 20, 100, 50, 500, 20},
		{"past top edge", 10, 790, 100, 50, 10, 750},
		{"larger than page", 10, 10, 700, 900, 0, 0},
		{"nan", math.NaN(), 20, 100, 50, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampToPage(tt.x, tt.y, tt.w, tt.h, page)
			assert.Equal(t, tt.wantX, got.X)
			assert.Equal(t, tt.wantY, got.Y)
		})
	}
}
