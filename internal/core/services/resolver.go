package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// ChunkProvider produces the chunks of a document on a cache miss.
type ChunkProvider func(ctx context.Context) ([]domain.Chunk, error)

// IndexResolver loads a persisted index or builds it at most once.
//
// Concurrent resolutions of the same DocumentID share one build; callers
// that arrive while it runs wait for it and then open the result.
type IndexResolver struct {
	store    driven.IndexStore
	embedder driven.EmbeddingService
	flight   singleflight.Group
}

// NewIndexResolver creates a resolver over store.
func NewIndexResolver(store driven.IndexStore, embedder driven.EmbeddingService) *IndexResolver {
	return &IndexResolver{store: store, embedder: embedder}
}

// Resolve returns an open index for id. provide is only invoked when no
// index is persisted. The caller owns the returned index.
func (r *IndexResolver) Resolve(
	ctx context.Context,
	id domain.DocumentID,
	provide ChunkProvider,
) (driven.VectorIndex, domain.IndexStatus, error) {
	if !id.Valid() {
		return nil, "", fmt.Errorf("%w: malformed document id %q", domain.ErrInvalidInput, id)
	}

	// The build outlives a caller that gives up: its result is cached for
	// everyone else.
	buildCtx := context.WithoutCancel(ctx)
	v, err, shared := r.flight.Do(id.String(), func() (any, error) {
		return r.ensure(buildCtx, id, provide)
	})
	if err != nil {
		return nil, "", err
	}
	status := v.(domain.IndexStatus)
	if shared {
		logger.Debug("index build shared", "document", id.Short())
	}

	idx, err := r.store.Open(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("open index %s: %w", id.Short(), err)
	}
	return idx, status, nil
}

func (r *IndexResolver) ensure(ctx context.Context, id domain.DocumentID, provide ChunkProvider) (domain.IndexStatus, error) {
	exists, err := r.store.Exists(id)
	if err != nil {
		return "", err
	}
	if exists {
		logger.Info("loading cached index", "document", id.Short())
		return domain.IndexStatusCached, nil
	}

	if r.embedder == nil {
		return "", domain.ErrEmbeddingUnavailable
	}

	chunks, err := provide(ctx)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", domain.ErrExtractionExhausted
	}

	if err := r.embed(ctx, chunks); err != nil {
		return "", err
	}

	logger.Info("building index", "document", id.Short(), "chunks", len(chunks))
	if err := r.store.Build(ctx, id, chunks); err != nil {
		return "", fmt.Errorf("build index %s: %w", id.Short(), err)
	}
	return domain.IndexStatusIndexed, nil
}

// embed fills the Embedding of every chunk in place.
func (r *IndexResolver) embed(ctx context.Context, chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: %d embeddings for %d chunks",
			domain.ErrUpstreamUnavailable, len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}
