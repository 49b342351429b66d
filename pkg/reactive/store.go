// Package reactive keeps a selection state together with the signals derived
// from it and notifies subscribers after every mutation.
package reactive

import (
	"sync"

	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/signals"
)

// Listener receives the state and its signals after a mutation. Both values
// always belong to the same revision.
type Listener func(state selection.State, sig signals.Signals)

type subscription struct {
	id int
	fn Listener
}

// Store owns the current selection state. Mutations go through Update, which
// recomputes signals in the same critical section so readers never observe a
// state paired with stale signals.
type Store struct {
	mu        sync.RWMutex
	state     selection.State
	sig       signals.Signals
	revision  uint64
	nextID    int
	listeners []subscription
}

// NewStore seeds a store with the initial state.
func NewStore(initial selection.State) *Store {
	state := initial.Clone()
	return &Store{
		state: state,
		sig:   signals.Derive(state),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() selection.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Current returns a copy of the current state with its revision.
func (s *Store) Current() (selection.State, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), s.revision
}

// Signals returns the signals memoised for the current revision.
func (s *Store) Signals() signals.Signals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sig
}

// Revision increments on every mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Update applies fn to the state, re-derives signals and notifies listeners.
// Listeners run synchronously, after the lock is released, in subscription
// order.
func (s *Store) Update(fn func(*selection.State)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	next := s.state.Clone()
	fn(&next)
	s.state = next
	s.sig = signals.Derive(next)
	s.revision++
	state := s.state.Clone()
	sig := s.sig
	listeners := append([]subscription(nil), s.listeners...)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(state, sig)
	}
}

// Set replaces the whole state.
func (s *Store) Set(state selection.State) {
	s.Update(func(current *selection.State) {
		*current = state.Clone()
	})
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
