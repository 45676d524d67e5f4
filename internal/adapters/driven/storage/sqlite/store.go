package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// IndexFile is the database file name inside each document directory.
const IndexFile = "index.db"

// buildPrefix marks in-progress build directories.
const buildPrefix = ".build-"

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore keeps one SQLite database per DocumentID under a root directory.
type IndexStore struct {
	root string
}

// NewIndexStore creates the root directory if needed.
func NewIndexStore(root string) (*IndexStore, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty vector directory", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating vector directory: %w", err)
	}
	return &IndexStore{root: root}, nil
}

// Root returns the vector directory.
func (s *IndexStore) Root() string {
	return s.root
}

// Dir returns the directory holding the index for id.
func (s *IndexStore) Dir(id domain.DocumentID) string {
	return filepath.Join(s.root, id.String())
}

// Exists reports whether the index directory holds a non-empty database.
func (s *IndexStore) Exists(id domain.DocumentID) (bool, error) {
	if !id.Valid() {
		return false, fmt.Errorf("%w: document id %q", domain.ErrInvalidInput, id)
	}

	info, err := os.Stat(filepath.Join(s.Dir(id), IndexFile))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading index directory: %w", err)
	}
	return info.Mode().IsRegular() && info.Size() > 0, nil
}

// Build writes chunks into a fresh database and renames it into place.
// Chunks with empty content are skipped; all embeddings must share one
// dimension.
func (s *IndexStore) Build(ctx context.Context, id domain.DocumentID, chunks []domain.Chunk) error {
	if !id.Valid() {
		return fmt.Errorf("%w: document id %q", domain.ErrInvalidInput, id)
	}

	tmp, err := os.MkdirTemp(s.root, buildPrefix+id.Short()+"-")
	if err != nil {
		return fmt.Errorf("creating build directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := writeIndex(ctx, filepath.Join(tmp, IndexFile), id, chunks); err != nil {
		return err
	}

	// A directory without a database would block the rename.
	if ok, err := s.Exists(id); err == nil && !ok {
		if err := os.RemoveAll(s.Dir(id)); err != nil {
			return fmt.Errorf("removing stale index directory: %w", err)
		}
	}

	if err := os.Rename(tmp, s.Dir(id)); err != nil {
		// Another build of the same content finished first.
		if ok, _ := s.Exists(id); ok {
			return nil
		}
		return fmt.Errorf("publishing index: %w", err)
	}
	return nil
}

// Open returns a handle on the persisted index for id.
func (s *IndexStore) Open(ctx context.Context, id domain.DocumentID) (driven.VectorIndex, error) {
	ok, err := s.Exists(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("index %s: %w", id.Short(), domain.ErrNotFound)
	}

	db, err := openDB(filepath.Join(s.Dir(id), IndexFile), true)
	if err != nil {
		return nil, err
	}

	var dims string
	err = db.QueryRowContext(ctx, `SELECT value FROM index_meta WHERE key = 'dimensions'`).Scan(&dims)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("reading index metadata: %w", err)
	}
	n, err := strconv.Atoi(dims)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("reading index metadata: %w", err)
	}

	return &vectorIndex{db: db, id: id, dimensions: n}, nil
}

// Purge removes leftover build directories of interrupted processes.
func (s *IndexStore) Purge() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("reading vector directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), buildPrefix) {
			if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
				return fmt.Errorf("removing %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

func openDB(path string, readOnly bool) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)"
	if readOnly {
		dsn += "&_pragma=query_only(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

func writeIndex(ctx context.Context, path string, id domain.DocumentID, chunks []domain.Chunk) error {
	db, err := openDB(path, false)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(ctx, db, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, position, content, metadata, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	dims, stored := 0, 0
	for _, c := range chunks {
		if strings.TrimSpace(c.Content) == "" {
			continue
		}
		if len(c.Embedding) == 0 {
			return fmt.Errorf("%w: chunk %d has no embedding", domain.ErrInvalidInput, c.Position)
		}
		if dims == 0 {
			dims = len(c.Embedding)
		} else if len(c.Embedding) != dims {
			return fmt.Errorf("%w: chunk %d has %d dimensions, want %d",
				domain.ErrInvalidInput, c.Position, len(c.Embedding), dims)
		}

		meta, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.Position, c.Content, string(meta),
			float32SliceToBytes(c.Embedding)); err != nil {
			return fmt.Errorf("saving chunk %d: %w", c.Position, err)
		}
		stored++
	}
	if stored == 0 {
		return fmt.Errorf("%w: no chunks to index", domain.ErrInvalidInput)
	}

	meta := map[string]string{
		"document_id": id.String(),
		"dimensions":  strconv.Itoa(dims),
		"chunk_count": strconv.Itoa(stored),
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO index_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("saving index metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_vector_index.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts embeddings to little-endian bytes.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
