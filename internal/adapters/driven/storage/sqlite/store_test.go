package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

var testID = domain.DocumentID(strings.Repeat("ab", 32))

// setupTestStore creates an index store in a temporary directory.
func setupTestStore(t *testing.T) *IndexStore {
	t.Helper()

	store, err := NewIndexStore(filepath.Join(t.TempDir(), "vector_db"))
	require.NoError(t, err)
	return store
}

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "c0", Position: 0, Content: "Invoice total is 42 EUR", Embedding: []float32{1, 0, 0},
			Metadata: domain.PageMetadata{Page: 1, Source: "invoice.pdf"}},
		{ID: "c1", Position: 1, Content: "   ", Embedding: []float32{0, 1, 0}},
		{ID: "c2", Position: 2, Content: "Payment due in 30 days", Embedding: []float32{0, 1, 0},
			Metadata: domain.PageMetadata{Page: 2, Source: "invoice.pdf", OCR: domain.OCRVision}},
		{ID: "c3", Position: 3, Content: "Thank you", Embedding: []float32{0.7, 0.7, 0},
			Metadata: domain.PageMetadata{Page: 2, Source: "invoice.pdf"}},
	}
}

func TestNewIndexStore_EmptyRoot(t *testing.T) {
	_, err := NewIndexStore("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExists_Missing(t *testing.T) {
	store := setupTestStore(t)

	ok, err := store.Exists(testID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestExists_EmptyDirectory tests that an empty directory is not a cache hit
func TestExists_EmptyDirectory(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, os.MkdirAll(store.Dir(testID), 0o755))

	ok, err := store.Exists(testID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestExists_DirectoryWithoutDatabase tests that stray files do not count
// as a built index
func TestExists_DirectoryWithoutDatabase(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, os.MkdirAll(store.Dir(testID), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(testID), "index.faiss"), []byte("x"), 0o600))

	ok, err := store.Exists(testID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Open(context.Background(), testID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuild_ReplacesStaleDirectory(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, os.MkdirAll(store.Dir(testID), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(testID), "index.pkl"), []byte("x"), 0o600))

	require.NoError(t, store.Build(ctx, testID, testChunks()))

	ok, err := store.Exists(testID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoFileExists(t, filepath.Join(store.Dir(testID), "index.pkl"))

	idx, err := store.Open(ctx, testID)
	require.NoError(t, err)
	defer idx.Close()
	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestExists_InvalidID(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Exists("../etc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildAndOpen(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, testID, testChunks()))

	ok, err := store.Exists(testID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.FileExists(t, filepath.Join(store.Dir(testID), IndexFile))

	idx, err := store.Open(ctx, testID)
	require.NoError(t, err)
	defer idx.Close()

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "blank chunk must not be persisted")

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "c0", hits[0].Chunk.ID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "c3", hits[1].Chunk.ID)

	assert.Equal(t, testID, hits[0].Chunk.DocumentID)
	assert.Equal(t, []float32{1, 0, 0}, hits[0].Chunk.Embedding)
	assert.Equal(t, domain.PageMetadata{Page: 1, Source: "invoice.pdf"}, hits[0].Chunk.Metadata)
}

func TestSearch_MetadataRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testID, testChunks()))

	idx, err := store.Open(ctx, testID)
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Search(ctx, []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, domain.OCRVision, hits[0].Chunk.Metadata.OCR)
}

func TestSearch_DimensionMismatch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testID, testChunks()))

	idx, err := store.Open(ctx, testID)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Search(ctx, []float32{1, 0}, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestOpen_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Open(context.Background(), testID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestBuild_FailureLeavesNothing tests that a rejected build publishes no directory
func TestBuild_FailureLeavesNothing(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ID: "a", Content: "one", Embedding: []float32{1, 0}},
		{ID: "b", Position: 1, Content: "two", Embedding: []float32{1, 0, 0}},
	}
	err := store.Build(ctx, testID, chunks)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ok, err := store.Exists(testID)
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuild_NoChunks(t *testing.T) {
	store := setupTestStore(t)

	err := store.Build(context.Background(), testID, []domain.Chunk{{ID: "x", Content: " "}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestBuild_SecondBuildKeepsFirst tests that a racing build of the same content is harmless
func TestBuild_SecondBuildKeepsFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, testID, testChunks()))
	require.NoError(t, store.Build(ctx, testID, testChunks()[:1]))

	idx, err := store.Open(ctx, testID)
	require.NoError(t, err)
	defer idx.Close()

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPurge(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(store.Root(), buildPrefix+"stale"), 0o755))
	require.NoError(t, store.Build(context.Background(), testID, testChunks()))

	require.NoError(t, store.Purge())

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testID.String(), entries[0].Name())
}

func TestFloat32Bytes(t *testing.T) {
	in := []float32{0.5, -1.25, 3}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
