package models

import (
	"strings"
	"time"

	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// DayOneFlags are the completion flags for day 1. Day 1 is the only day
// with a dinner service.
type DayOneFlags struct {
	Entrance bool
	Lunch    bool
	Dinner   bool
	Kit      bool
}

// DayTwoFlags are the completion flags for day 2.
type DayTwoFlags struct {
	Entrance bool
	Lunch    bool
	Kit      bool
}

// Flags holds the per-day completion state of an attendee. Flags are
// monotonic: once set they never revert. The kit is a single entitlement
// spanning both days.
type Flags struct {
	Day1 DayOneFlags
	Day2 DayTwoFlags
}

// Done reports whether the flag for (action, day) is set. Combinations that
// do not exist (day-2 dinner) report false.
func (f Flags) Done(action domain.Action, day domain.Day) bool {
	switch day {
	case domain.Day1:
		switch action {
		case domain.ActionEntrance:
			return f.Day1.Entrance
		case domain.ActionLunch:
			return f.Day1.Lunch
		case domain.ActionDinner:
			return f.Day1.Dinner
		case domain.ActionKit:
			return f.Day1.Kit
		}
	case domain.Day2:
		switch action {
		case domain.ActionEntrance:
			return f.Day2.Entrance
		case domain.ActionLunch:
			return f.Day2.Lunch
		case domain.ActionKit:
			return f.Day2.Kit
		}
	}
	return false
}

// KitIssued reports whether the kit was picked up on either day.
func (f Flags) KitIssued() bool {
	return f.Day1.Kit || f.Day2.Kit
}

// Set turns on the flag for (action, day). Setting a non-existent
// combination is a programming error caught by the caller's validation.
func (f *Flags) Set(action domain.Action, day domain.Day) {
	switch day {
	case domain.Day1:
		switch action {
		case domain.ActionEntrance:
			f.Day1.Entrance = true
		case domain.ActionLunch:
			f.Day1.Lunch = true
		case domain.ActionDinner:
			f.Day1.Dinner = true
		case domain.ActionKit:
			f.Day1.Kit = true
		}
	case domain.Day2:
		switch action {
		case domain.ActionEntrance:
			f.Day2.Entrance = true
		case domain.ActionLunch:
			f.Day2.Lunch = true
		case domain.ActionKit:
			f.Day2.Kit = true
		}
	}
}

// Profile is the contact information captured at registration.
type Profile struct {
	Name  string
	Email string
	Phone string
}

// Attendee is one registered event participant. Category and ScanCode are
// fixed at registration; Flags mutate only through the check-in accept path.
type Attendee struct {
	ID        domain.AttendeeID
	Code      string
	Category  domain.Category
	ScanCode  string
	Profile   Profile
	Flags     Flags
	CreatedAt time.Time
}

// NewAttendee validates registration input and builds the record. The code
// comes from the allocator and the scan code from the physical badge.
func NewAttendee(id domain.AttendeeID, code string, category domain.Category, scanCode string, profile Profile, now time.Time) (*Attendee, error) {
	scanCode = strings.TrimSpace(scanCode)
	if scanCode == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "scan code is required")
	}
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	profile.Email = strings.TrimSpace(profile.Email)
	profile.Phone = strings.TrimSpace(profile.Phone)

	return &Attendee{
		ID:        id,
		Code:      code,
		Category:  category,
		ScanCode:  scanCode,
		Profile:   profile,
		CreatedAt: now,
	}, nil
}

// Summary is the derived dashboard view: recomputed on demand from the
// attendee table, never stored.
type Summary struct {
	Total        int
	ByCategory   map[domain.Category]int
	Day1Entrance int
	Day1Lunch    int
	Day1Dinner   int
	Day2Entrance int
	Day2Lunch    int
	KitsIssued   int
}
