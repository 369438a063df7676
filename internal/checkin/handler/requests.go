package handler

import (
	"strings"

	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// CheckinRequest is the HTTP request body for POST /checkin.
type CheckinRequest struct {
	AttendeeID string `json:"attendee_id"`
	Action     string `json:"action"`
	Day        int    `json:"day"`

	// Parsed values (populated by Validate)
	parsedAttendeeID domain.AttendeeID
	parsedAction     domain.Action
	parsedDay        domain.Day
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckinRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.AttendeeID = strings.TrimSpace(r.AttendeeID)
	if r.AttendeeID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "attendee_id is required")
	}
	attendeeID, err := domain.ParseAttendeeID(r.AttendeeID)
	if err != nil {
		return err
	}
	r.parsedAttendeeID = attendeeID

	action, err := domain.ParseAction(r.Action)
	if err != nil {
		return err
	}
	r.parsedAction = action

	day, err := domain.ParseDay(r.Day)
	if err != nil {
		return err
	}
	r.parsedDay = day

	return nil
}

// ParsedAttendeeID returns the validated attendee ID.
func (r *CheckinRequest) ParsedAttendeeID() domain.AttendeeID {
	return r.parsedAttendeeID
}

// ParsedAction returns the validated action.
func (r *CheckinRequest) ParsedAction() domain.Action {
	return r.parsedAction
}

// ParsedDay returns the validated day.
func (r *CheckinRequest) ParsedDay() domain.Day {
	return r.parsedDay
}
