package suppression

import (
	"context"
	"sync"
	"time"
)

// InMemory is the process-local window: a bounded map with per-entry
// expiry. Expired entries are dropped lazily on access and in bulk by
// Sweep, which the server runs periodically.
type InMemory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time // key -> expiry
}

func NewInMemory(ttl time.Duration) *InMemory {
	return &InMemory{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

func (s *InMemory) Seen(_ context.Context, key Key, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.entries[key.String()]
	if !ok {
		return false, nil
	}
	if now.After(expiry) {
		delete(s.entries, key.String())
		return false, nil
	}
	return true, nil
}

func (s *InMemory) Mark(_ context.Context, key Key, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key.String()] = now.Add(s.ttl)
	return nil
}

// Sweep removes all expired entries and returns how many were dropped.
func (s *InMemory) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for k, expiry := range s.entries {
		if now.After(expiry) {
			delete(s.entries, k)
			dropped++
		}
	}
	return dropped
}

// Len reports the current entry count, expired entries included.
func (s *InMemory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
