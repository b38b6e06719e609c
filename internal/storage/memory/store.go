// Package memory holds the process-wide calendar event store.
//
// Events live in one insertion-ordered slice guarded by a single mutex. Every
// operation, reads included, runs the whole body inside that critical section,
// so queries serialize with each other and with writes. Lookups are linear
// scans; indexOf is the only place that locates an event by key.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sanya-cherniy/l2.11/internal/domain"
)

// Store is the in-memory event collection. The zero value is an empty store.
type Store struct {
	mu        sync.Mutex
	events    []domain.Event
	corrupted bool
}

// NewStore returns an empty store. A process holds one for its lifetime.
func NewStore() *Store {
	return &Store{}
}

// Insert appends e unless an event with the same date and name exists.
func (s *Store) Insert(_ context.Context, e domain.Event) error {
	return s.withLock(func() error {
		if s.indexOf(e.Key()) >= 0 {
			return domain.ErrEventExists
		}
		s.events = append(s.events, e)
		return nil
	})
}

// Replace rewrites the event addressed by key with next and returns the
// previous value. next may not collide with a different stored event.
func (s *Store) Replace(_ context.Context, key domain.Key, next domain.Event) (domain.Event, error) {
	var prev domain.Event
	err := s.withLock(func() error {
		i := s.indexOf(key)
		if i < 0 {
			return domain.ErrEventNotFound
		}
		if j := s.indexOf(next.Key()); j >= 0 && j != i {
			return domain.ErrEventExists
		}
		prev = s.events[i]
		s.events[i] = next
		return nil
	})
	return prev, err
}

// Remove deletes the event addressed by key, keeping the order of the rest.
func (s *Store) Remove(_ context.Context, key domain.Key) (domain.Event, error) {
	var removed domain.Event
	err := s.withLock(func() error {
		i := s.indexOf(key)
		if i < 0 {
			return domain.ErrEventNotFound
		}
		removed = s.events[i]
		s.events = append(s.events[:i], s.events[i+1:]...)
		return nil
	})
	return removed, err
}

// Filter returns the events accepted by match in insertion order. The result
// is a copy; it is never nil.
func (s *Store) Filter(_ context.Context, match func(domain.Event) bool) ([]domain.Event, error) {
	out := []domain.Event{}
	err := s.withLock(func() error {
		for _, e := range s.events {
			if match(e) {
				out = append(out, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Len reports how many events are stored. It is a diagnostic accessor used by
// tests. It takes the same lock as every other operation but still answers
// after the store has been marked corrupted.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func (s *Store) indexOf(key domain.Key) int {
	for i, e := range s.events {
		if e.Matches(key) {
			return i
		}
	}
	return -1
}

// withLock runs fn as one critical section. A panic inside fn latches the
// store as corrupted; the collection is not touched again afterwards.
func (s *Store) withLock(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.corrupted {
		return domain.ErrStoreCorrupted
	}
	defer func() {
		if r := recover(); r != nil {
			s.corrupted = true
			err = fmt.Errorf("%w: %v", domain.ErrStoreCorrupted, r)
		}
	}()
	return fn()
}
