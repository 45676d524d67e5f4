package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// pageBreak is the form feed pdftotext writes after every page.
const pageBreak = "\f"

// Extractor reads the text layer of a PDF with pdftotext.
type Extractor struct {
	runner CommandRunner
}

// NewExtractor creates an extractor that runs the installed pdftotext.
func NewExtractor() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewExtractorWithRunner creates an extractor with a custom command runner.
func NewExtractorWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// ExtractPages returns one Document per page with selectable text.
// Pages are numbered from 1; blank pages are skipped but still counted.
func (e *Extractor) ExtractPages(ctx context.Context, path string) ([]domain.Document, error) {
	out, err := e.runner.Run(ctx, toolPDFToText, "-enc", "UTF-8", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", path, err)
	}

	pages := strings.Split(string(out), pageBreak)
	docs := make([]domain.Document, 0, len(pages))
	for i, page := range pages {
		text := strings.TrimSpace(page)
		if text == "" {
			continue
		}
		docs = append(docs, domain.Document{
			Content: text,
			Metadata: domain.PageMetadata{
				Page:   i + 1,
				Source: path,
			},
		})
	}

	return docs, nil
}
