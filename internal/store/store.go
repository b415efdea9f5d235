package store

import (
	"sync"

	"expense_tracker/internal/logger"
)

// Listener is called after every dispatch with the resulting state.
type Listener func(state State, action Action)

type subscription struct {
	id int
	fn Listener
}

// Store serializes reducer runs. Listeners run outside the lock and may
// dispatch.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []subscription
	nextID    int
}

func New(initial State) *Store {
	return &Store{state: initial}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	st := s.state
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	logger.Debug("store dispatch", "action", action.Type())

	for _, l := range listeners {
		l.fn(st, action)
	}
	return st
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
