package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// Chunker splits page Documents into chunks.
type Chunker interface {
	Process(ctx context.Context, id domain.DocumentID, docs []domain.Document) ([]domain.Chunk, error)
}

// IndexService fingerprints PDFs and resolves their indices.
type IndexService struct {
	extractor DocumentExtractor
	chunker   Chunker
	resolver  *IndexResolver
}

// NewIndexService creates an index service.
func NewIndexService(extractor DocumentExtractor, chunker Chunker, resolver *IndexResolver) *IndexService {
	return &IndexService{extractor: extractor, chunker: chunker, resolver: resolver}
}

// Index loads or builds the index of the PDF at path and closes it.
func (s *IndexService) Index(ctx context.Context, path string) (*domain.IngestResult, error) {
	idx, result, err := s.open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := idx.Close(); err != nil {
		logger.Warn("close index", "document", result.DocumentID.Short(), "error", err)
	}
	return result, nil
}

// open resolves the index of the PDF at path. The caller owns the index.
func (s *IndexService) open(ctx context.Context, path string) (driven.VectorIndex, *domain.IngestResult, error) {
	start := time.Now()

	id, err := Fingerprint(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("fingerprinted", "path", path, "document", id.Short())

	result := &domain.IngestResult{DocumentID: id, Source: path}
	idx, status, err := s.resolver.Resolve(ctx, id, func(ctx context.Context) ([]domain.Chunk, error) {
		docs, err := s.extractor.Extract(ctx, path)
		if err != nil {
			return nil, err
		}
		result.Pages = len(docs)
		result.Vision = docs[0].Metadata.OCR != domain.OCRNone
		return s.chunker.Process(ctx, id, docs)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", id.Short(), err)
	}

	result.Status = status
	if result.Chunks, err = idx.Count(ctx); err != nil {
		_ = idx.Close()
		return nil, nil, err
	}
	result.Duration = time.Since(start)

	logger.Info("document ready",
		"document", id.Short(),
		"status", status,
		"chunks", result.Chunks,
		"elapsed", result.Duration.Round(time.Millisecond))
	return idx, result, nil
}
