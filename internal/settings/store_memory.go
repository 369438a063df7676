package settings

import (
	"context"
	"sync"

	"gatepass/pkg/domain"
)

// InMemoryStore keeps the window in process memory, both days enabled by
// default.
type InMemoryStore struct {
	mu     sync.RWMutex
	window Window
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{window: Window{Day1Enabled: true, Day2Enabled: true}}
}

func (s *InMemoryStore) Get(_ context.Context) (Window, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window, nil
}

func (s *InMemoryStore) SetDay(_ context.Context, day domain.Day, enabled bool) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch day {
	case domain.Day1:
		s.window.Day1Enabled = enabled
	case domain.Day2:
		s.window.Day2Enabled = enabled
	}
	return s.window, nil
}
