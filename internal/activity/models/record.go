package models

import (
	"time"

	"gatepass/pkg/domain"
)

// Record is one accepted action: the immutable audit trail entry. Records
// are appended in the same transaction as the attendee flag update and are
// never updated or deleted.
type Record struct {
	AttendeeID   domain.AttendeeID
	AttendeeCode string
	Action       domain.Action
	Day          domain.Day
	PerformedBy  string
	PerformedAt  time.Time
}
