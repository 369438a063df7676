// Package activity persists the append-only action log. No update or
// delete operations exist on either implementation.
package activity

import (
	"context"
	"sync"

	"gatepass/internal/activity/models"
	"gatepass/pkg/domain"
)

// InMemory keeps records in append order and reads them newest first.
type InMemory struct {
	mu      sync.RWMutex
	records []models.Record
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// Append adds a record to the log.
func (s *InMemory) Append(_ context.Context, rec models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *InMemory) Recent(_ context.Context, limit int) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(limit, func(models.Record) bool { return true }), nil
}

// RecentFor returns up to limit records for one attendee, newest first.
func (s *InMemory) RecentFor(_ context.Context, id domain.AttendeeID, limit int) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(limit, func(r models.Record) bool { return r.AttendeeID == id }), nil
}

func (s *InMemory) collect(limit int, keep func(models.Record) bool) []models.Record {
	out := make([]models.Record, 0)
	for i := len(s.records) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}
