package tui

import "errors"

// ErrMissingPlacementService is returned when the placement service is not provided.
var ErrMissingPlacementService = errors.New("tui: placement service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
