// Package tui provides an interactive terminal user interface for sigplace.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Placement manages sessions, recipients and placeholders.
	Placement driving.PlacementService

	// Submission uploads finished sessions. Optional.
	Submission driving.SubmissionService

	// Settings supplies zoom, autoscroll and cell size. Optional.
	Settings driving.SettingsService

	// Watcher reloads the open document when it changes on disk. Optional.
	Watcher driven.DocumentWatcher
}

// NewPorts creates a new Ports aggregate with the required service.
func NewPorts(placement driving.PlacementService) *Ports {
	return &Ports{Placement: placement}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Placement == nil {
		return ErrMissingPlacementService
	}
	return nil
}
