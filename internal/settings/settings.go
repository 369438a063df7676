// Package settings holds the event window switches: one enable flag per
// event day, flipped by an administrator and read by the check-in guard on
// every request.
package settings

import (
	"context"

	"gatepass/pkg/domain"
)

// Window is the pair of per-day switches. Both days start enabled.
type Window struct {
	Day1Enabled bool
	Day2Enabled bool
}

// Enabled reports the switch for a day.
func (w Window) Enabled(day domain.Day) bool {
	switch day {
	case domain.Day1:
		return w.Day1Enabled
	case domain.Day2:
		return w.Day2Enabled
	}
	return false
}

// Store persists the window. Implementations are a single mutable record.
type Store interface {
	Get(ctx context.Context) (Window, error)
	SetDay(ctx context.Context, day domain.Day, enabled bool) (Window, error)
}
