package driven

import (
	"context"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// DocumentLoader reads the page geometry of a PDF.
// Backed by pdfcpu.
type DocumentLoader interface {
	// Load returns the page count and per-page dimensions of the file.
	// Returns domain.ErrInvalidDocument if the file is not a readable PDF.
	Load(ctx context.Context, path string) (*domain.Document, error)
}
