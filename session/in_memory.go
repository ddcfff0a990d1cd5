package session

import (
	"context"
	"sync"

	"github.com/lokiteck/dspagent/core"
)

// InMemoryStore is a volatile core.SessionStore implementation storing
// sessions in a process-local map. The map itself is guarded by a RWMutex
// held only for lookups and inserts; each session guards its own turn slice,
// so operations on distinct sessions never contend beyond the map access.
// Snapshots returned to callers are clones to prevent external mutation of
// internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// GetOrCreate implements core.SessionStore.
func (s *InMemoryStore) GetOrCreate(_ context.Context, sessionID string) (*core.Session, error) {
	return s.entry(sessionID).Clone(), nil
}

// Append implements core.SessionStore. All turns of one call are appended
// contiguously under the session's own lock.
func (s *InMemoryStore) Append(_ context.Context, sessionID string, turns ...core.Turn) error {
	s.entry(sessionID).AppendTurns(turns...)
	return nil
}

// History implements core.SessionStore. The returned slice is a copy.
func (s *InMemoryStore) History(_ context.Context, sessionID string) ([]core.Turn, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return []core.Turn{}, nil
	}
	return sess.GetTurns(), nil
}

// SetContext implements core.SessionStore.
func (s *InMemoryStore) SetContext(_ context.Context, sessionID, key, value string) error {
	s.entry(sessionID).SetContext(key, value)
	return nil
}

// GetContext implements core.SessionStore.
func (s *InMemoryStore) GetContext(_ context.Context, sessionID, key string) (string, bool, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	v, found := sess.GetContext(key)
	return v, found, nil
}

// Clear implements core.SessionStore. Clearing an unknown session is a no-op.
func (s *InMemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// entry returns the live session for sessionID, creating it lazily.
func (s *InMemoryStore) entry(sessionID string) *core.Session {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; ok {
		return sess
	}
	sess = core.NewSession(sessionID)
	s.sessions[sessionID] = sess
	return sess
}
