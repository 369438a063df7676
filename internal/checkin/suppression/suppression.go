// Package suppression implements the duplicate-suppression window: a
// short-lived record of "just performed" (attendee, action, day) keys that
// guards against rapid re-submission before the store write is visible.
// It is a best-effort backstop; the persisted flag is the correctness
// guarantee.
package suppression

import (
	"context"
	"fmt"
	"time"

	"gatepass/pkg/domain"
)

// Key identifies one suppressible action.
type Key struct {
	AttendeeID domain.AttendeeID
	Action     domain.Action
	Day        domain.Day
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.AttendeeID, domain.Slug(k.Action, k.Day))
}

// Store is the window. Seen never marks; Mark happens only after the
// accept path has committed, so a rejected request leaves no trace.
type Store interface {
	Seen(ctx context.Context, key Key, now time.Time) (bool, error)
	Mark(ctx context.Context, key Key, now time.Time) error
}
