package handler

import (
	"gatepass/internal/checkin"
)

// CheckinResponse is the HTTP response for POST /checkin.
type CheckinResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// FromDecision converts a guard decision to its wire form.
func FromDecision(d checkin.Decision) CheckinResponse {
	return CheckinResponse{
		Accepted: d.Accepted,
		Reason:   string(d.Reason),
	}
}
