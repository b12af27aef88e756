package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds independent sessions keyed by ID.
type Registry struct {
	newSession func(id string) *Session

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a registry. newSession builds a session for a freshly
// generated ID and should pass it on with WithID.
func NewRegistry(newSession func(id string) *Session) *Registry {
	return &Registry{
		newSession: newSession,
		sessions:   make(map[string]*Session),
	}
}

// Create starts a new session under a random UUID.
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	s := r.newSession(id)

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete removes a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// PruneIdle removes sessions not updated within maxIdle and returns how
// many were removed. Sessions with an evaluation in flight are kept.
func (r *Registry) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.UpdatedAt().Before(cutoff) && !s.Evaluating() {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
