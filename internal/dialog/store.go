package dialog

import "sync"

// Store holds the current conversation state per user. Entries live until
// the flow completes, is cancelled, or a new command overrides them; there
// is deliberately no TTL.
type Store struct {
	mu     sync.RWMutex
	states map[int64]State
}

// NewStore creates an empty conversation state store.
func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Get returns the user's current state, or nil when the user is idle.
func (s *Store) Get(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[userID]
}

// Set replaces the user's state.
func (s *Store) Set(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = st
}

// Clear returns the user to idle.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// InProgress reports whether the user is inside a flow.
func (s *Store) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.states[userID]
	return ok
}

// Len reports how many users currently hold a state.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
