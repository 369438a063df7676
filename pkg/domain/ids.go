// Package domain defines the shared identifier and enum types for the
// check-in core. Typed IDs prevent accidental mixing of UUIDs across
// entities; the enums here are the vocabulary every layer speaks.
package domain

import (
	"github.com/google/uuid"

	dErrors "gatepass/pkg/domain-errors"
)

// AttendeeID is the opaque internal identity of an attendee record. The
// human-facing sequential code (e.g. AL-007) lives on the record itself.
type AttendeeID uuid.UUID

func NewAttendeeID() AttendeeID {
	return AttendeeID(uuid.New())
}

func (id AttendeeID) String() string {
	return uuid.UUID(id).String()
}

func (id AttendeeID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// ParseAttendeeID parses the wire representation of an attendee ID.
func ParseAttendeeID(s string) (AttendeeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return AttendeeID{}, dErrors.New(dErrors.CodeBadRequest, "invalid attendee id")
	}
	return AttendeeID(u), nil
}
