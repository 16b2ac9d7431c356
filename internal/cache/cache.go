// Package cache provides the in-process named key-value memoization store
// used by the domain services. Entries have no TTL and no size bound; they
// live until evicted or the process exits.
package cache

import "sync"

// Cache names used by the domain services.
const (
	GamesByPlatform = "gamesByPlatform"
	GamesByGenre    = "gamesByGenre"
	Orders          = "orders"
	Users           = "users"
)

// AllOrdersKey is the single key under which the whole order collection is
// cached.
const AllOrdersKey = "all"

// Store is a process-wide set of named key-value caches. It is constructed
// at startup and injected into the services; safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	caches map[string]map[string]any
}

func NewStore() *Store {
	return &Store{caches: make(map[string]map[string]any)}
}

// Get returns the value stored under (name, key), if any.
func (s *Store) Get(name, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.caches[name]
	if !ok {
		return nil, false
	}
	v, ok := c[key]
	return v, ok
}

// Put stores value under (name, key), creating the named cache on first use.
func (s *Store) Put(name, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[name]
	if !ok {
		c = make(map[string]any)
		s.caches[name] = c
	}
	c[key] = value
}

// EvictAll clears every key under each named cache. Missing names are a
// no-op. This is the coarse invalidation used after catalog mutations.
func (s *Store) EvictAll(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		delete(s.caches, name)
	}
}

// Len returns the number of keys held under the named cache.
func (s *Store) Len(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.caches[name])
}
