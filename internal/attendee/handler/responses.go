package handler

import (
	"time"

	"gatepass/internal/attendee/models"
)

// AttendeeResponse is the wire form of one attendee record.
type AttendeeResponse struct {
	ID        string        `json:"id"`
	Code      string        `json:"code"`
	Category  string        `json:"category"`
	ScanCode  string        `json:"scan_code"`
	Name      string        `json:"name"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Flags     FlagsResponse `json:"flags"`
	CreatedAt time.Time     `json:"created_at"`
}

// FlagsResponse is the per-day completion state.
type FlagsResponse struct {
	Day1 DayOneFlagsResponse `json:"day1"`
	Day2 DayTwoFlagsResponse `json:"day2"`
}

type DayOneFlagsResponse struct {
	Entrance bool `json:"entrance"`
	Lunch    bool `json:"lunch"`
	Dinner   bool `json:"dinner"`
	Kit      bool `json:"kit"`
}

type DayTwoFlagsResponse struct {
	Entrance bool `json:"entrance"`
	Lunch    bool `json:"lunch"`
	Kit      bool `json:"kit"`
}

// ScanMissResponse is the 404 body for an unregistered badge. The suggested
// category comes from the badge prefix when it is recognizable.
type ScanMissResponse struct {
	Error             string `json:"error"`
	ErrorDescription  string `json:"error_description"`
	SuggestedCategory string `json:"suggested_category,omitempty"`
}

// FromAttendee converts a domain attendee to its wire form.
func FromAttendee(a *models.Attendee) *AttendeeResponse {
	return &AttendeeResponse{
		ID:       a.ID.String(),
		Code:     a.Code,
		Category: a.Category.String(),
		ScanCode: a.ScanCode,
		Name:     a.Profile.Name,
		Email:    a.Profile.Email,
		Phone:    a.Profile.Phone,
		Flags: FlagsResponse{
			Day1: DayOneFlagsResponse{
				Entrance: a.Flags.Day1.Entrance,
				Lunch:    a.Flags.Day1.Lunch,
				Dinner:   a.Flags.Day1.Dinner,
				Kit:      a.Flags.Day1.Kit,
			},
			Day2: DayTwoFlagsResponse{
				Entrance: a.Flags.Day2.Entrance,
				Lunch:    a.Flags.Day2.Lunch,
				Kit:      a.Flags.Day2.Kit,
			},
		},
		CreatedAt: a.CreatedAt,
	}
}

// FromAttendees converts a result page, never returning null for empty.
func FromAttendees(list []*models.Attendee) []*AttendeeResponse {
	out := make([]*AttendeeResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromAttendee(a))
	}
	return out
}
