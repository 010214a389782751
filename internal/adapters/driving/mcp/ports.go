package mcp

import (
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Placement manages sessions, recipients and placeholders.
	Placement driving.PlacementService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Placement == nil {
		return ErrMissingPlacementService
	}
	return nil
}
