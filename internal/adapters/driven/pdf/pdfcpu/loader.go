// Package pdfcpu reads PDF page geometry using github.com/pdfcpu/pdfcpu.
//
// Only page count and per-page dimensions are extracted. Rendering and
// content parsing are left to the viewer.
package pdfcpu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader implements driven.DocumentLoader.
type Loader struct {
	now func() time.Time
}

// NewLoader creates a new pdfcpu-backed document loader.
func NewLoader() *Loader {
	return &Loader{now: time.Now}
}

// Load returns the page count and per-page dimensions of the PDF at path.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoDocument, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidDocument, path)
	}

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidDocument, path, err)
	}

	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, fmt.Errorf("%w: validate %s: %v", domain.ErrInvalidDocument, path, err)
	}

	pages, err := pageDims(pdfCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDocument, path, err)
	}
	logger.Debug("pdfcpu: %s has %d page(s)", path, len(pages))

	return &domain.Document{
		Path:     path,
		Pages:    pages,
		LoadedAt: l.now(),
	}, nil
}

// pageDims converts pdfcpu's per-page dimensions, which already account for
// page rotation, into domain page sizes.
func pageDims(pdfCtx *model.Context) ([]domain.PageDims, error) {
	if pdfCtx.PageCount < 1 {
		return nil, errors.New("document has no pages")
	}

	dims, err := pdfCtx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("page dimensions: %w", err)
	}
	if len(dims) != pdfCtx.PageCount {
		return nil, fmt.Errorf("expected %d page sizes, got %d", pdfCtx.PageCount, len(dims))
	}

	pages := make([]domain.PageDims, len(dims))
	for i, d := range dims {
		pages[i] = toPageDims(d)
	}
	return pages, nil
}

func toPageDims(d types.Dim) domain.PageDims {
	return domain.PageDims{Width: d.Width, Height: d.Height}
}
