package project

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Store is the shared container of project records. One Store is created at
// startup and handed to every component that reads or writes projects.
//
// Notifications are delivered one round at a time, in the order the
// mutations happened: the K-th round always carries K records. A listener may
// call AddProject itself; the nested round runs after the current one ends.
type Store struct {
	mu          sync.Mutex
	projects    []Record
	listeners   []Listener
	pending     [][]Record
	dispatching bool
	newID       func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides how record IDs are generated.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddListener registers l for every subsequent change. Registering the same
// function twice makes it fire twice per change.
func (s *Store) AddListener(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// AddProject appends a new record and notifies every listener, in
// registration order, with a copy of the full project list.
func (s *Store) AddProject(title, description string, people int) Record {
	s.mu.Lock()
	rec := Record{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		People:      people,
	}
	s.projects = append(s.projects, rec)
	s.pending = append(s.pending, slices.Clone(s.projects))

	if s.dispatching {
		// Another caller (or an outer frame of this goroutine) is already
		// draining the queue and will deliver this round.
		s.mu.Unlock()
		return rec
	}

	s.dispatching = true
	s.mu.Unlock()
	s.dispatch()

	return rec
}

// Subscribe registers l and returns the current records in one step, so no
// addition can land between the snapshot and the registration.
func (s *Store) Subscribe(l Listener) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
	return slices.Clone(s.projects)
}

// dispatch drains pending rounds. A panicking listener aborts the current
// round but leaves the store able to dispatch the next one.
func (s *Store) dispatch() {
	s.mu.Lock()
	defer func() {
		s.dispatching = false
		s.mu.Unlock()
	}()

	for len(s.pending) > 0 {
		snapshot := s.pending[0]
		s.pending = s.pending[1:]
		s.deliver(slices.Clone(s.listeners), snapshot)
	}
}

// deliver runs listeners with s.mu released. It is called and returns with
// s.mu held, including when a listener panics.
func (s *Store) deliver(listeners []Listener, snapshot []Record) {
	s.mu.Unlock()
	defer s.mu.Lock()

	for _, l := range listeners {
		l(slices.Clone(snapshot))
	}
}

// Projects returns a copy of all records in insertion order.
func (s *Store) Projects() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.projects)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}
