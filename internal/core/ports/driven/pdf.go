package driven

import (
	"context"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// TextExtractor reads the selectable text layer of a PDF.
type TextExtractor interface {
	// ExtractPages returns one Document per non-empty page, in page order,
	// tagged with its 1-based page number. A PDF without a text layer
	// yields an empty slice and no error.
	ExtractPages(ctx context.Context, path string) ([]domain.Document, error)
}

// PageRenderer rasterises PDF pages for the vision fallback.
type PageRenderer interface {
	// PageCount returns the number of pages. It fails with
	// domain.ErrInvalidPDF when the file cannot be opened as a PDF.
	PageCount(ctx context.Context, path string) (int, error)

	// RenderJPEG renders one 1-based page as a JPEG image.
	RenderJPEG(ctx context.Context, path string, page int, opts RenderOptions) ([]byte, error)
}

// RenderOptions controls page rasterisation.
type RenderOptions struct {
	// DPI is the render resolution.
	DPI int

	// Quality is the JPEG quality from 1 to 100.
	Quality int
}
