package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Pruner drops sessions that have been idle for longer than idle.
type Pruner interface {
	Prune(idle time.Duration) int
}

// Config configures Server.
type Config struct {
	Addr           string
	UploadDir      string
	MaxUploadBytes int64

	// SessionIdle is how long a session may sit unused. Zero disables
	// pruning.
	SessionIdle time.Duration
}

// Server runs the HTTP interface until its context ends.
type Server struct {
	cfg    Config
	srv    *http.Server
	pruner Pruner
}

// NewServer wires the router into an http.Server. pruner may be nil.
func NewServer(assistant driving.AssistantService, pruner Pruner, cfg Config) *Server {
	router := NewRouter(assistant, RouterConfig{
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	return &Server{
		cfg:    cfg,
		pruner: pruner,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", s.cfg.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if s.pruner != nil && s.cfg.SessionIdle > 0 {
		go s.prune(ctx)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) prune(ctx context.Context) {
	interval := s.cfg.SessionIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.pruner.Prune(s.cfg.SessionIdle); n > 0 {
				logger.Info("pruned idle sessions", "count", n)
			}
		}
	}
}
