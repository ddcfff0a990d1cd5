package core

import (
	"context"
	"sync"
	"time"
)

// Session is a conversational container tracking an ordered turn history plus
// string-valued context cached for the session's lifetime (for example the
// company question block fetched on the first screening turn). It is safe for
// concurrent access.
//
// Contract:
//   - Turn order is the sole source of conversational memory; turns are never
//     dropped or reordered.
//   - Turns returns a defensive copy to avoid external mutation.
//   - Clone performs deep copies of slices/maps for safe divergence.
type Session struct {
	ID      string            `json:"id" bson:"_id"`
	Turns   []Turn            `json:"turns" bson:"turns"`
	Context map[string]string `json:"context" bson:"context"`
	Created time.Time         `json:"created" bson:"created"`
	Updated time.Time         `json:"updated" bson:"updated"`
	mu      sync.RWMutex
}

// NewSession creates an empty session with the given ID.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{ID: id, Turns: []Turn{}, Context: map[string]string{}, Created: now, Updated: now}
}

// AppendTurns appends turns to the history in order, updating the Updated
// timestamp. Appending the user turn and assistant turn of one exchange in a
// single call keeps the pair adjacent.
func (s *Session) AppendTurns(turns ...Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Turns = append(s.Turns, turns...)
	s.Updated = time.Now().UTC()
}

// GetTurns returns a defensive copy of the full turn history.
func (s *Session) GetTurns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := make([]Turn, len(s.Turns))
	copy(turns, s.Turns)
	return turns
}

// Len returns the number of turns recorded so far.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Turns)
}

// GetContext returns the cached context value for key and whether it was set.
func (s *Session) GetContext(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.Context[key]
	return v, ok
}

// SetContext caches a context value for the session's remaining lifetime.
func (s *Session) SetContext(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Context[key] = value
	s.Updated = time.Now().UTC()
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{
		ID:      s.ID,
		Turns:   make([]Turn, len(s.Turns)),
		Context: make(map[string]string, len(s.Context)),
		Created: s.Created,
		Updated: s.Updated,
	}
	copy(clone.Turns, s.Turns)
	for k, v := range s.Context {
		clone.Context[k] = v
	}
	return clone
}

// SessionStore persists sessions and their evolving turn history. Calls for
// distinct session IDs must not block one another; implementations guard each
// entry independently.
type SessionStore interface {
	// GetOrCreate returns a snapshot of the session, creating an empty one on
	// first use. It is idempotent.
	GetOrCreate(ctx context.Context, sessionID string) (*Session, error)

	// Append adds turns to the session history preserving order. All turns of
	// one call are appended contiguously.
	Append(ctx context.Context, sessionID string, turns ...Turn) error

	// History returns a read-only snapshot of the turn history. Mutating the
	// returned slice does not affect stored state.
	History(ctx context.Context, sessionID string) ([]Turn, error)

	// SetContext caches a context value on the session.
	SetContext(ctx context.Context, sessionID, key, value string) error

	// GetContext reads a cached context value. The bool reports presence.
	GetContext(ctx context.Context, sessionID, key string) (string, bool, error)

	// Clear removes the session entirely; a subsequent GetOrCreate starts a
	// fresh empty session.
	Clear(ctx context.Context, sessionID string) error
}
