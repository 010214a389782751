package domain

import (
	"fmt"
	"time"
)

// PlacementSettings controls the default placeholder box.
type PlacementSettings struct {
	// DefaultWidth is the screen-space width of a new box.
	DefaultWidth float64

	// DefaultHeight is the screen-space height of a new box.
	DefaultHeight float64
}

// DefaultSize returns the default box as a screen-space size.
func (p PlacementSettings) DefaultSize() Size {
	return Size{Width: p.DefaultWidth, Height: p.DefaultHeight}
}

// ZoomSettings bounds the manual zoom buttons.
type ZoomSettings struct {
	// Min is the smallest manual zoom factor.
	Min float64

	// Max is the largest manual zoom factor.
	Max float64

	// Step is the increment applied by zoom in/out.
	Step float64
}

// Validate checks the zoom bounds are usable.
func (z ZoomSettings) Validate() error {
	if z.Min <= 0 || z.Max < z.Min || z.Step <= 0 {
		return fmt.Errorf("%w: zoom bounds min=%v max=%v step=%v", ErrInvalidInput, z.Min, z.Max, z.Step)
	}
	return nil
}

// AutoScrollSettings drives the drag-to-autoscroll timer.
type AutoScrollSettings struct {
	// Interval is the tick period while a drag is active.
	Interval time.Duration

	// Edge is the screen-space distance from the viewport edge that starts scrolling.
	Edge float64

	// Speed is the screen-space distance scrolled per tick.
	Speed float64
}

// TUISettings maps terminal cells to screen pixels.
type TUISettings struct {
	// CellWidth is the number of screen pixels one terminal column represents.
	CellWidth int

	// CellHeight is the number of screen pixels one terminal row represents.
	CellHeight int
}

// APISettings configures the external signing API.
type APISettings struct {
	// BaseURL is the signing API root. Empty disables submission.
	BaseURL string

	// RatePerSecond caps outbound requests.
	RatePerSecond float64
}

// IsConfigured returns true if submission is possible.
func (a APISettings) IsConfigured() bool {
	return a.BaseURL != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Placement holds default placeholder settings.
	Placement PlacementSettings

	// Zoom holds manual zoom bounds.
	Zoom ZoomSettings

	// AutoScroll holds drag autoscroll settings.
	AutoScroll AutoScrollSettings

	// TUI holds terminal rendering settings.
	TUI TUISettings

	// API holds signing API settings.
	API APISettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The signing API is left unconfigured; export still works without it.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Placement: PlacementSettings{
			DefaultWidth:  100,
			DefaultHeight: 50,
		},
		Zoom: ZoomSettings{
			Min:  0.3,
			Max:  2.0,
			Step: 0.1,
		},
		AutoScroll: AutoScrollSettings{
			Interval: 50 * time.Millisecond,
			Edge:     40,
			Speed:    20,
		},
		TUI: TUISettings{
			CellWidth:  8,
			CellHeight: 16,
		},
		API: APISettings{
			RatePerSecond: 2,
		},
	}
}
