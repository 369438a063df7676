// Package counter persists the per-category sequence behind attendee codes.
// The counter is owned exclusively by the allocator; both implementations
// make the read-modify-write a single atomic step.
package counter

import (
	"context"
	"sync"

	"gatepass/pkg/domain"
)

// InMemory keeps counters behind one mutex so concurrent Next calls within
// a process can never observe the same value.
type InMemory struct {
	mu       sync.Mutex
	counters map[domain.Category]int64
}

func NewInMemory() *InMemory {
	return &InMemory{counters: make(map[domain.Category]int64)}
}

// Next increments and returns the counter for a category. The first call
// for a category returns 1.
func (s *InMemory) Next(_ context.Context, category domain.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[category]++
	return s.counters[category], nil
}
