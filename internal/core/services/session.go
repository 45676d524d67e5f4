package services

import (
	"slices"
	"sync"
	"time"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// Session is the conversation state of one client: the active pipeline
// and the exchanges asked against it.
//
// Operations on a session are serialised by its lock, so an answer is
// never computed against a document that is being replaced.
type Session struct {
	mu       sync.Mutex
	pipeline *RetrievalPipeline
	log      []domain.Exchange
	lastUsed time.Time
	closed   bool
}

// reset clears the log. Caller holds s.mu.
func (s *Session) reset() {
	s.log = nil
}

// replace swaps in p and closes the previous pipeline. Caller holds s.mu.
func (s *Session) replace(p *RetrievalPipeline) {
	if s.pipeline != nil {
		if err := s.pipeline.Close(); err != nil {
			logger.Warn("close pipeline", "error", err)
		}
	}
	s.pipeline = p
}

// History returns a copy of the conversation log.
func (s *Session) History() []domain.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.log)
}

// SessionStore holds sessions by ID.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Get returns the session for id, creating it on first use.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		s = &Session{}
		st.sessions[id] = s
	}
	s.lastUsed = st.now()
	return s
}

// lock returns the live session for id with its lock held. A session
// dropped between lookup and locking is skipped, so nothing is stored on
// a session the store no longer holds.
func (st *SessionStore) lock(id string) *Session {
	for {
		s := st.Get(id)
		s.mu.Lock()
		if !s.closed {
			return s
		}
		s.mu.Unlock()
	}
}

// Lookup returns the session for id without creating it.
func (st *SessionStore) Lookup(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Drop removes the session and closes its pipeline.
func (st *SessionStore) Drop(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		s.mu.Lock()
		s.replace(nil)
		s.log = nil
		s.closed = true
		s.mu.Unlock()
	}
}

// Prune drops sessions unused for longer than idle and returns how many
// were dropped.
func (st *SessionStore) Prune(idle time.Duration) int {
	cutoff := st.now().Add(-idle)

	st.mu.Lock()
	var stale []string
	for id, s := range st.sessions {
		if s.lastUsed.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	st.mu.Unlock()

	for _, id := range stale {
		st.Drop(id)
	}
	return len(stale)
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Close drops every session.
func (st *SessionStore) Close() {
	st.mu.Lock()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	st.mu.Unlock()

	for _, id := range ids {
		st.Drop(id)
	}
}
