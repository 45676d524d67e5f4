package inbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

type recordingIndexer struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (r *recordingIndexer) Index(_ context.Context, path string) (*domain.IngestResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.IngestResult{Status: domain.IndexStatusIndexed, Source: path}, nil
}

func (r *recordingIndexer) indexed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestHandleFsEvent(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "report.PDF")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	hidden := filepath.Join(dir, ".partial.pdf")
	require.NoError(t, os.WriteFile(hidden, []byte("%PDF"), 0o644))
	sub := filepath.Join(dir, "folder.pdf")
	require.NoError(t, os.Mkdir(sub, 0o755))

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create pdf", pdf, fsnotify.Create, true},
		{"write pdf", pdf, fsnotify.Write, true},
		{"chmod pdf", pdf, fsnotify.Chmod, false},
		{"remove pdf", filepath.Join(dir, "gone.pdf"), fsnotify.Remove, false},
		{"rename pdf", filepath.Join(dir, "gone.pdf"), fsnotify.Rename, false},
		{"create text file", txt, fsnotify.Create, false},
		{"hidden pdf", hidden, fsnotify.Create, false},
		{"directory named like pdf", sub, fsnotify.Create, false},
		{"pdf removed before stat", filepath.Join(dir, "vanished.pdf"), fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := handleFsEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.path, path)
			}
		})
	}
}

func TestWatcher_IndexesExistingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("%PDF old"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0o644))

	indexer := &recordingIndexer{}
	w := New(dir, indexer, WithSettle(20*time.Millisecond), WithWorkers(1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(indexer.indexed()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{existing}, indexer.indexed())

	dropped := filepath.Join(dir, "dropped.pdf")
	require.NoError(t, os.WriteFile(dropped, []byte("%PDF new"), 0o644))

	require.Eventually(t, func() bool {
		paths := indexer.indexed()
		return len(paths) >= 2 && paths[len(paths)-1] == dropped
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_FailuresDoNotStopIt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.pdf"), []byte("junk"), 0o644))

	indexer := &recordingIndexer{err: errors.New("not a pdf")}
	w := New(dir, indexer, WithSettle(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(indexer.indexed()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope"), &recordingIndexer{})
	err := w.Run(context.Background())
	assert.Error(t, err)
}

func TestWatcher_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF"), 0o644))

	err := New(file, &recordingIndexer{}).Run(context.Background())
	assert.Error(t, err)
}
