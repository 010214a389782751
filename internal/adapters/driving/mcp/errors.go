// Package mcp provides an MCP (Model Context Protocol) server adapter for sigplace.
// It lets AI assistants inspect placement sessions and position signature boxes.
package mcp

import "errors"

// ErrMissingPlacementService is returned when the placement service is not provided.
var ErrMissingPlacementService = errors.New("mcp: placement service is required")
