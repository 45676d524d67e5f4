// Package memory provides an in-process IndexStore. Indices live only as
// long as the process, which suits one-off questions and tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore keeps embedded chunks in a map keyed by DocumentID.
type IndexStore struct {
	mu      sync.RWMutex
	indices map[domain.DocumentID][]domain.Chunk
	builds  int
}

// NewIndexStore creates an empty store.
func NewIndexStore() *IndexStore {
	return &IndexStore{indices: make(map[domain.DocumentID][]domain.Chunk)}
}

// Exists reports whether an index was built for id.
func (s *IndexStore) Exists(id domain.DocumentID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.indices[id]) > 0, nil
}

// Build stores the non-empty chunks for id. An existing index is kept.
func (s *IndexStore) Build(ctx context.Context, id domain.DocumentID, chunks []domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	kept := make([]domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c.Content) == "" {
			continue
		}
		c.Embedding = slices.Clone(c.Embedding)
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return fmt.Errorf("%w: no chunks to index", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds++
	if _, ok := s.indices[id]; !ok {
		s.indices[id] = kept
	}
	return nil
}

// Open returns a handle over the stored chunks.
func (s *IndexStore) Open(_ context.Context, id domain.DocumentID) (driven.VectorIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks, ok := s.indices[id]
	if !ok {
		return nil, fmt.Errorf("index %s: %w", id.Short(), domain.ErrNotFound)
	}
	return &vectorIndex{chunks: chunks}, nil
}

// Builds returns how many times Build ran, including ones that kept an
// existing index.
func (s *IndexStore) Builds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builds
}

type vectorIndex struct {
	chunks []domain.Chunk
}

func (v *vectorIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	hits := make([]driven.VectorHit, len(v.chunks))
	for i, c := range v.chunks {
		hits[i] = driven.VectorHit{Chunk: c, Similarity: domain.CosineSimilarity(query, c.Embedding)}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if k < len(hits) {
		hits = hits[:max(k, 0)]
	}
	return hits, nil
}

func (v *vectorIndex) Count(context.Context) (int, error) {
	return len(v.chunks), nil
}

func (v *vectorIndex) Close() error {
	return nil
}
