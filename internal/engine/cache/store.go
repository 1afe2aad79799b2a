package cache

import (
	"sync"
	"time"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Store holds at most one entry per name; a newer version replaces the old
// entry on Set.
type Store struct {
	mu      sync.RWMutex
	enabled bool
	entries map[string]*Entry
	hits    uint64
	misses  uint64
}

// New returns an enabled store.
func New() *Store {
	return &Store{enabled: true, entries: make(map[string]*Entry)}
}

// NewDisabled returns a store that never hits. Useful for benchmarks and
// for checking that memoized and direct results agree.
func NewDisabled() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Get returns the value stored for k if it was computed for the same version and day.
func (s *Store) Get(k Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		s.misses++
		return nil, false
	}

	e, ok := s.entries[k.Name]
	if !ok || !e.Matches(k) {
		s.misses++
		return nil, false
	}
	s.hits++
	return e.Value, true
}

// Set stores v under k, replacing any entry with the same name.
func (s *Store) Set(k Key, v any) {
	if !s.enabled {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[k.Name] = &Entry{Key: k, Value: v, CreatedAt: time.Now()}
}

// Clear drops every entry and resets the counters.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Entry)
	s.hits, s.misses = 0, 0
}

// Stats returns a snapshot of the counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{Hits: s.hits, Misses: s.misses, Entries: len(s.entries)}
}

// Memo returns the cached value for k, computing and storing it on a miss.
// A cached value of a different type than T counts as a miss.
func Memo[T any](s *Store, k Key, compute func() T) T {
	if v, ok := s.Get(k); ok {
		if typed, typeOK := v.(T); typeOK {
			return typed
		}
	}
	v := compute()
	s.Set(k, v)
	return v
}
