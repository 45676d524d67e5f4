package driven

import (
	"context"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// VectorIndex is an opened, queryable index of one document's chunks.
type VectorIndex interface {
	// Search returns up to k chunks ordered by descending similarity.
	// Returned chunks carry their embeddings for re-ranking.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// VectorHit is one similarity search result.
type VectorHit struct {
	Chunk      domain.Chunk
	Similarity float64
}

// IndexStore maps DocumentIDs to persisted vector indices.
// There is no eviction; indices accumulate until an operator removes them.
type IndexStore interface {
	// Exists reports whether a complete index is persisted for id.
	Exists(id domain.DocumentID) (bool, error)

	// Build persists embedded chunks as the index for id. The write is
	// atomic: a failed build leaves nothing behind, and a concurrent
	// build of the same id that finished first is kept.
	Build(ctx context.Context, id domain.DocumentID, chunks []domain.Chunk) error

	// Open loads the index for id. Returns domain.ErrNotFound if absent.
	Open(ctx context.Context, id domain.DocumentID) (VectorIndex, error)
}
