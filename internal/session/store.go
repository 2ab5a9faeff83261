// internal/session/store.go
//
// In-memory session store.
// Characteristics:
//   - Stores *Session objects keyed by problem id in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
package session

import (
	"context"
	"sync"
)

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by problem id.
	// Returns ErrNotFound if the problem was never started.
	Get(ctx context.Context, problemID string) (*Session, error)

	// Delete drops a session; missing ids are ignored.
	Delete(ctx context.Context, problemID string) error

	// Len reports the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ProblemID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ProblemID] = s
	return nil
}

func (m *memory) Get(_ context.Context, problemID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[problemID]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(_ context.Context, problemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, problemID)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
