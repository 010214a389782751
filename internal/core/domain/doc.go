// Package domain defines the core business entities for sigplace.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A loaded PDF reduced to its page geometry
//   - Recipient: A person who signs the document
//   - SignaturePlaceholder: A signature box in document space
//   - PlacementSession: The draft that owns recipients and placeholders
//   - Submission: The payload handed to the external signing API
//
// # Coordinate Systems
//
// Placeholder geometry is always stored in document space: PDF units,
// bottom-left origin, independent of zoom. Screen space (top-left origin,
// scaled) is derived by the geometry package and never persisted.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
