// Package attendee persists attendee records. The postgres implementation
// is the shared store scanning stations run against; the in-memory mirror
// backs tests and single-station deployments.
package attendee

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gatepass/internal/attendee/models"
	"gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

// InMemory keeps attendees behind one mutex. Create and ApplyAction hold
// the lock across their check-and-mutate, giving the same exactly-once
// behavior the postgres store gets from conditional updates.
type InMemory struct {
	mu        sync.RWMutex
	attendees map[domain.AttendeeID]models.Attendee
	byScan    map[string]domain.AttendeeID
}

func NewInMemory() *InMemory {
	return &InMemory{
		attendees: make(map[domain.AttendeeID]models.Attendee),
		byScan:    make(map[string]domain.AttendeeID),
	}
}

// Create inserts a new attendee, enforcing scan-code uniqueness.
func (s *InMemory) Create(_ context.Context, a *models.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byScan[a.ScanCode]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.attendees[a.ID] = *a
	s.byScan[a.ScanCode] = a.ID
	return nil
}

// FindByScanCode looks up an attendee by the code bound at registration.
func (s *InMemory) FindByScanCode(_ context.Context, scanCode string) (*models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byScan[scanCode]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	a := s.attendees[id]
	return &a, nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.AttendeeID) (*models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attendees[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &a, nil
}

// ApplyAction sets the completion flag for (action, day) if and only if it
// is not already set and, for kit, neither day's kit flag is set. The
// check and the mutation happen under one lock so concurrent callers
// collapse to exactly one winner; losers get ErrInvalidState.
func (s *InMemory) ApplyAction(_ context.Context, id domain.AttendeeID, action domain.Action, day domain.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attendees[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !action.Exists(day) {
		return sentinel.ErrInvalidState
	}
	if action == domain.ActionKit && a.Flags.KitIssued() {
		return sentinel.ErrInvalidState
	}
	if a.Flags.Done(action, day) {
		return sentinel.ErrInvalidState
	}
	a.Flags.Set(action, day)
	s.attendees[id] = a
	return nil
}

// Search matches the query case-insensitively against name, email, phone,
// attendee code and scan code, newest registrations first.
func (s *InMemory) Search(_ context.Context, query string, limit int) ([]*models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	matched := make([]*models.Attendee, 0)
	for _, a := range s.attendees {
		if q == "" || matches(a, q) {
			copy := a
			matched = append(matched, &copy)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func matches(a models.Attendee, q string) bool {
	return strings.Contains(strings.ToLower(a.Profile.Name), q) ||
		strings.Contains(strings.ToLower(a.Profile.Email), q) ||
		strings.Contains(a.Profile.Phone, q) ||
		strings.Contains(strings.ToLower(a.Code), q) ||
		strings.Contains(strings.ToLower(a.ScanCode), q)
}

// Summary recomputes the dashboard counts from current records.
func (s *InMemory) Summary(_ context.Context) (*models.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := &models.Summary{ByCategory: make(map[domain.Category]int)}
	for _, a := range s.attendees {
		sum.Total++
		sum.ByCategory[a.Category]++
		if a.Flags.Day1.Entrance {
			sum.Day1Entrance++
		}
		if a.Flags.Day1.Lunch {
			sum.Day1Lunch++
		}
		if a.Flags.Day1.Dinner {
			sum.Day1Dinner++
		}
		if a.Flags.Day2.Entrance {
			sum.Day2Entrance++
		}
		if a.Flags.Day2.Lunch {
			sum.Day2Lunch++
		}
		if a.Flags.KitIssued() {
			sum.KitsIssued++
		}
	}
	return sum, nil
}
