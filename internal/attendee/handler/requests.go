package handler

import (
	"strings"

	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// RegisterRequest is the HTTP request body for POST /attendees.
type RegisterRequest struct {
	ScanCode string `json:"scan_code"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.ScanCode = strings.TrimSpace(r.ScanCode)
	if r.ScanCode == "" {
		return dErrors.New(dErrors.CodeBadRequest, "scan_code is required")
	}
	if len(r.ScanCode) > 64 {
		return dErrors.New(dErrors.CodeBadRequest, "scan_code must be at most 64 characters")
	}

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if len(r.Name) > 200 {
		return dErrors.New(dErrors.CodeBadRequest, "name must be at most 200 characters")
	}

	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		return dErrors.New(dErrors.CodeBadRequest, "category is required")
	}
	if _, err := domain.ParseCategory(r.Category); err != nil {
		return err
	}

	return nil
}
