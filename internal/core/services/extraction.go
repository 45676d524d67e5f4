package services

import (
	"context"
	"fmt"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// DocumentExtractor turns a PDF into page Documents.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string) ([]domain.Document, error)
}

// ExtractionService reads the text layer first and only falls back to the
// vision model when that yields no page at all.
type ExtractionService struct {
	text   driven.TextExtractor
	vision DocumentExtractor
}

// NewExtractionService creates an extraction service. vision may be nil,
// in which case text-less PDFs fail with ErrExtractionExhausted.
func NewExtractionService(text driven.TextExtractor, vision DocumentExtractor) *ExtractionService {
	return &ExtractionService{text: text, vision: vision}
}

// Extract returns the Documents of the PDF at path, in page order.
func (s *ExtractionService) Extract(ctx context.Context, path string) ([]domain.Document, error) {
	docs, err := s.text.ExtractPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if len(docs) > 0 {
		logger.Debug("text layer extracted", "pages", len(docs))
		return docs, nil
	}

	if s.vision == nil {
		return nil, domain.ErrExtractionExhausted
	}

	logger.Info("no selectable text, using vision fallback", "path", path)
	docs, err = s.vision.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("vision fallback: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrExtractionExhausted
	}
	logger.Info("vision fallback extracted text", "documents", len(docs))
	return docs, nil
}
