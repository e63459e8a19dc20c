// Package session keeps time-boxed admin authorization grants in memory.
// Sessions are created by a password check, independent of persisted data,
// and are lost on restart by design.
package session

import (
	"sync"
	"time"
)

// Session is one admin's authorization window.
type Session struct {
	LoginAt   time.Time
	ExpiresAt time.Time
}

// Registry maps admin ids to their session validity windows.
type Registry struct {
	mu       sync.Mutex
	duration time.Duration
	sessions map[int64]Session

	// now is swappable for boundary tests.
	now func() time.Time
}

// NewRegistry creates a registry issuing sessions of the given duration.
func NewRegistry(duration time.Duration) *Registry {
	return &Registry{
		duration: duration,
		sessions: make(map[int64]Session),
		now:      time.Now,
	}
}

// Duration returns the configured session length.
func (r *Registry) Duration() time.Duration {
	return r.duration
}

// Create issues a fresh session for the admin. Re-login overwrites the
// previous window; durations extend, they do not stack.
func (r *Registry) Create(adminID int64) Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	s := Session{LoginAt: now, ExpiresAt: now.Add(r.duration)}
	r.sessions[adminID] = s
	return s
}

// IsValid reports whether the admin holds an unexpired session. An expired
// entry is evicted lazily on the way out.
func (r *Registry) IsValid(adminID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[adminID]
	if !ok {
		return false
	}
	if r.now().After(s.ExpiresAt) {
		delete(r.sessions, adminID)
		return false
	}
	return true
}

// Get returns the session window for display, if one exists.
func (r *Registry) Get(adminID int64) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[adminID]
	return s, ok
}

// Invalidate removes the admin's session on explicit logout.
func (r *Registry) Invalidate(adminID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, adminID)
}

// Sweep drops every expired session. It runs once at process start;
// IsValid self-heals lazily afterwards.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
