// Package geometry converts placeholder rectangles between the two
// coordinate systems used by sigplace.
//
// Document space is the PDF's native system: bottom-left origin, unscaled.
// Screen space is the rendering container: top-left origin, multiplied by
// the current zoom factor.
//
// Position conversions never transform the box height. Callers pass the
// height in document units and divide screen heights by the scale
// themselves; a resize relies on this to keep the bottom edge anchored in
// document space while the visual top-left corner moves.
//
// The package is pure arithmetic and safe for concurrent use.
package geometry
