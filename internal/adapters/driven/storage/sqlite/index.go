package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// Ensure vectorIndex implements the interface.
var _ driven.VectorIndex = (*vectorIndex)(nil)

// vectorIndex scans a document's chunks and ranks them by cosine
// similarity. A single PDF yields at most a few thousand chunks, so an
// exact scan is fast enough and needs no ANN structure.
type vectorIndex struct {
	db         *sql.DB
	id         domain.DocumentID
	dimensions int
}

// Search returns the k most similar chunks with their embeddings.
func (v *vectorIndex) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(query) != v.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrInvalidInput, len(query), v.dimensions)
	}

	rows, err := v.db.QueryContext(ctx, `
		SELECT id, position, content, metadata, embedding FROM chunks ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var hits []driven.VectorHit
	for rows.Next() {
		chunk, err := v.scanChunk(rows)
		if err != nil {
			return nil, err
		}
		hits = append(hits, driven.VectorHit{
			Chunk:      chunk,
			Similarity: domain.CosineSimilarity(query, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	// Stable sort keeps document order among equal scores.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the number of stored chunks.
func (v *vectorIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := v.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (v *vectorIndex) Close() error {
	return v.db.Close()
}

func (v *vectorIndex) scanChunk(rows *sql.Rows) (domain.Chunk, error) {
	var (
		c        domain.Chunk
		metaJSON string
		blob     []byte
	)
	if err := rows.Scan(&c.ID, &c.Position, &c.Content, &metaJSON, &blob); err != nil {
		return c, fmt.Errorf("scanning chunk: %w", err)
	}
	if err := json.Unmarshal([]byte(metaJSON), &c.Metadata); err != nil {
		return c, fmt.Errorf("decoding chunk metadata: %w", err)
	}
	c.DocumentID = v.id
	c.Embedding = bytesToFloat32Slice(blob)
	return c, nil
}
