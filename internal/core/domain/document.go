package domain

import "time"

// PageDims is the native size of a PDF page in document units.
type PageDims struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsKnown returns true once both dimensions are positive.
// Rendering and placement must wait until this holds.
func (d PageDims) IsKnown() bool {
	return d.Width > 0 && d.Height > 0
}

// Document represents a PDF reduced to the geometry the placement
// engine needs. It is produced by a DocumentLoader.
type Document struct {
	// Path is the file system location of the PDF.
	Path string `json:"path"`

	// Pages holds the dimensions of each page, index 0 is page 1.
	Pages []PageDims `json:"pages"`

	// LoadedAt is when the geometry was read.
	LoadedAt time.Time `json:"loadedAt"`
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// Page returns the dimensions of a 1-based page number.
// The second return value is false when the page does not exist.
func (d *Document) Page(pageNumber int) (PageDims, bool) {
	if d == nil || pageNumber < 1 || pageNumber > len(d.Pages) {
		return PageDims{}, false
	}
	return d.Pages[pageNumber-1], true
}

// HasPage reports whether pageNumber is within 1..NumPages.
func (d *Document) HasPage(pageNumber int) bool {
	_, ok := d.Page(pageNumber)
	return ok
}
