package curation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"newscast/apperrors"
)

// Sessions keeps one Session per connected operator.
type Sessions struct {
	mu    sync.Mutex
	items map[string]*Session
	dash  *Dashboard
	now   func() time.Time
}

// NewSessions returns an empty registry bound to dash
func NewSessions(dash *Dashboard) *Sessions {
	return &Sessions{
		items: make(map[string]*Session),
		dash:  dash,
		now:   time.Now,
	}
}

// Create registers a new session with default filters and an empty selection.
func (r *Sessions) Create() *Session {
	s := newSession(uuid.NewString(), r.dash, r.now())

	r.mu.Lock()
	r.items[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the session and marks it used.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.items[id]
	r.mu.Unlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("session %s not found", id)
	}
	s.touch(r.now())
	return s, nil
}

// Drop forgets a session. Unknown ids are ignored.
func (r *Sessions) Drop(id string) {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many went.
func (r *Sessions) Sweep(maxIdle time.Duration) int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, s := range r.items {
		if s.idleSince(now) > maxIdle {
			delete(r.items, id)
			dropped++
		}
	}
	return dropped
}
