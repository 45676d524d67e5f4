// Package inbox pre-indexes PDFs dropped into a watched directory, so the
// first upload of a known document is served from cache.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// DefaultSettle is how long a file must stay unchanged before indexing.
const DefaultSettle = 750 * time.Millisecond

// DefaultWorkers bounds concurrent index builds.
const DefaultWorkers = 2

// Watcher indexes PDFs as they appear in a directory.
type Watcher struct {
	dir     string
	indexer driving.IndexService
	settle  time.Duration
	workers int

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period after the last write event.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithWorkers sets the number of concurrent index builds.
func WithWorkers(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.workers = n
		}
	}
}

// New creates a watcher for dir.
func New(dir string, indexer driving.IndexService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:     dir,
		indexer: indexer,
		settle:  DefaultSettle,
		workers: DefaultWorkers,
		pending: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run indexes PDFs already in the directory, then watches for new ones
// until ctx is cancelled. Failed builds are logged and do not stop it.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch directory: %s is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	queue := make(chan string, 64)
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < w.workers; i++ {
		g.Go(func() error {
			for path := range queue {
				w.index(gctx, path)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(queue)
		defer w.stopPending()

		existing, err := w.scan()
		if err != nil {
			return err
		}
		for _, path := range existing {
			select {
			case queue <- path:
			case <-gctx.Done():
				return nil
			}
		}

		ready := make(chan string)
		for {
			select {
			case <-gctx.Done():
				return nil
			case event, ok := <-fsw.Events:
				if !ok {
					return nil
				}
				if path, ok := handleFsEvent(event); ok {
					w.schedule(gctx, path, ready)
				}
			case path := <-ready:
				select {
				case queue <- path:
				case <-gctx.Done():
					return nil
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watcher error", "dir", w.dir, "error", err)
			}
		}
	})

	logger.Info("watching for PDFs", "dir", w.dir)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// scan lists the PDFs already present.
func (w *Watcher) scan() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", w.dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isPDF(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(w.dir, e.Name()))
	}
	return paths, nil
}

// schedule (re)starts the settle timer for path.
func (w *Watcher) schedule(ctx context.Context, path string, ready chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) index(ctx context.Context, path string) {
	result, err := w.indexer.Index(ctx, path)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("index failed", "path", path, "error", err)
		}
		return
	}
	logger.Info("indexed",
		"path", path,
		"document", result.DocumentID.Short(),
		"status", result.Status,
		"chunks", result.Chunks)
}

// handleFsEvent returns the PDF path an event refers to, if it should
// trigger indexing. Hidden files, directories and removals are skipped.
func handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !isPDF(name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
