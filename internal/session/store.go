// Package session holds the signed-in customer's state shared by every
// screen. A Store is created once at startup and injected wherever it is
// needed; nothing reaches it through package-level state.
package session

import (
	"sync"

	"github.com/alexanderramin/vgn360/internal/domain"
)

// State is the value held by a Store.
type State = domain.SessionState

// Patch is a partial update. Nil fields leave the current value untouched.
type Patch struct {
	Mobile          *string
	IsAuthenticated *bool
}

// WithMobile returns a Patch setting only the mobile number.
func WithMobile(mobile string) Patch {
	return Patch{Mobile: &mobile}
}

// Authenticated returns a Patch marking the session authenticated for mobile.
func Authenticated(mobile string) Patch {
	ok := true
	return Patch{Mobile: &mobile, IsAuthenticated: &ok}
}

// Listener is notified after every Merge with the previous and new state.
type Listener func(prev, next State)

// Store is an in-memory holder of the session state.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewStore returns a Store with an empty mobile and no authentication.
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Merge shallow-merges p into the current state and notifies listeners.
func (s *Store) Merge(p Patch) {
	s.mu.Lock()
	prev := s.state
	if p.Mobile != nil {
		s.state.Mobile = *p.Mobile
	}
	if p.IsAuthenticated != nil {
		s.state.IsAuthenticated = *p.IsAuthenticated
	}
	next := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	// Called outside the lock so a listener may read the store.
	for _, l := range listeners {
		l(prev, next)
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
