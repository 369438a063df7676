package service

import (
	"context"
	"fmt"

	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// CounterStore issues the next value of a per-category sequence. Both
// implementations perform the increment as a single atomic step.
type CounterStore interface {
	Next(ctx context.Context, category domain.Category) (int64, error)
}

// Allocator turns counter values into human-facing attendee codes. Codes
// are unique and strictly increasing within a category; numbers burned by
// failed registrations are never reissued.
type Allocator struct {
	counters CounterStore
}

func NewAllocator(counters CounterStore) *Allocator {
	return &Allocator{counters: counters}
}

// Allocate returns the next code for a category, e.g. AL-007. The counter
// is left-padded to three digits and grows past 999 without truncation.
func (a *Allocator) Allocate(ctx context.Context, category domain.Category) (string, error) {
	prefix := category.Prefix()
	if prefix == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown attendee category")
	}
	n, err := a.counters.Next(ctx, category)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "code allocation failed")
	}
	return fmt.Sprintf("%s-%03d", prefix, n), nil
}
