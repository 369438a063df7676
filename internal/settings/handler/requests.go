package handler

import (
	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// SetWindowRequest is the HTTP request body for PUT /settings/window.
// Enabled is a pointer so a missing field is distinguishable from false.
type SetWindowRequest struct {
	Day     int   `json:"day"`
	Enabled *bool `json:"enabled"`

	// Parsed values (populated by Validate)
	parsedDay domain.Day
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *SetWindowRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	day, err := domain.ParseDay(r.Day)
	if err != nil {
		return err
	}
	r.parsedDay = day

	if r.Enabled == nil {
		return dErrors.New(dErrors.CodeBadRequest, "enabled is required")
	}

	return nil
}

// ParsedDay returns the validated day.
func (r *SetWindowRequest) ParsedDay() domain.Day {
	return r.parsedDay
}
