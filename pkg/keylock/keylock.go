// Package keylock provides per-key mutual exclusion inside one process.
//
// Lock takes every requested key in ascending order, so two callers locking
// overlapping key sets can never deadlock, and callers with disjoint sets
// never wait on each other.
//
//	unlock := locks.Lock(3, 1, 7)
//	defer unlock()
package keylock

import (
	"cmp"
	"slices"
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// Set is a collection of named mutexes. The zero value is ready to use.
type Set[K cmp.Ordered] struct {
	mu      sync.Mutex
	entries map[K]*entry
}

// Lock blocks until every key is held and returns the function that
// releases them. Duplicate keys are collapsed.
func (s *Set[K]) Lock(keys ...K) (unlock func()) {
	sorted := Sorted(keys)

	held := make([]*entry, 0, len(sorted))
	for _, k := range sorted {
		e := s.acquire(k)
		e.mu.Lock()
		held = append(held, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				s.release(sorted[i])
			}
		})
	}
}

// Len reports how many keys currently have holders or waiters.
func (s *Set[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Set[K]) acquire(k K) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = make(map[K]*entry)
	}
	e, ok := s.entries[k]
	if !ok {
		e = &entry{}
		s.entries[k] = e
	}
	e.refs++
	return e
}

func (s *Set[K]) release(k K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[k]
	e.refs--
	if e.refs == 0 {
		delete(s.entries, k)
	}
}

// Sorted returns the distinct keys in ascending order.
func Sorted[K cmp.Ordered](keys []K) []K {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
