// Package checkin decides whether a requested day-action may be applied
// and, on acceptance, applies it exactly once: flag update and activity
// record in one transaction, then the duplicate-suppression mark.
package checkin

import (
	"gatepass/internal/attendee/models"
	"gatepass/pkg/domain"
)

// Reason is the single concrete cause attached to every rejection so the
// station can present an exact message. Rejections are deterministic given
// current state; retrying reproduces the same rejection.
type Reason string

const (
	ReasonDuplicateSubmission Reason = "duplicate_submission"
	ReasonAlreadyCompleted    Reason = "already_completed"
	ReasonDayClosed           Reason = "day_closed"
	ReasonKitAlreadyIssued    Reason = "kit_already_issued"
	ReasonNotPermitted        Reason = "not_permitted"
)

// Decision is the outcome of an authorization. Rejections are expected,
// user-facing outcomes, not errors.
type Decision struct {
	Accepted bool
	Reason   Reason
}

func accept() Decision {
	return Decision{Accepted: true}
}

func reject(reason Reason) Decision {
	return Decision{Reason: reason}
}

// GateInput is everything the guard needs, gathered by the service before
// evaluation. The guard itself performs no I/O.
type GateInput struct {
	Category   domain.Category
	Flags      models.Flags
	Action     domain.Action
	Day        domain.Day
	DayOpen    bool
	Suppressed bool
}
