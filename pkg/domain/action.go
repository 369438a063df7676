package domain

import (
	"fmt"
	"strings"

	dErrors "gatepass/pkg/domain-errors"
)

// Action is a per-day entitlement an attendee can redeem at a station.
type Action string

const (
	ActionEntrance Action = "entrance"
	ActionLunch    Action = "lunch"
	ActionDinner   Action = "dinner"
	ActionKit      Action = "kit"
)

// Day identifies one of the two event days.
type Day int

const (
	Day1 Day = 1
	Day2 Day = 2
)

// ParseAction validates the wire representation of an action.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionEntrance:
		return ActionEntrance, nil
	case ActionLunch:
		return ActionLunch, nil
	case ActionDinner:
		return ActionDinner, nil
	case ActionKit:
		return ActionKit, nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "unknown action")
}

// ParseDay validates a day number. Only days 1 and 2 exist.
func ParseDay(n int) (Day, error) {
	switch Day(n) {
	case Day1, Day2:
		return Day(n), nil
	}
	return 0, dErrors.New(dErrors.CodeBadRequest, "day must be 1 or 2")
}

// Exists reports whether the (action, day) combination is part of the event
// schedule at all. Day 2 has no dinner service.
func (a Action) Exists(day Day) bool {
	if a == ActionDinner && day == Day2 {
		return false
	}
	switch a {
	case ActionEntrance, ActionLunch, ActionDinner, ActionKit:
		return day == Day1 || day == Day2
	}
	return false
}

func (a Action) String() string {
	return string(a)
}

// Slug is the persisted identifier of an (action, day) pair, matching the
// column naming of the attendee flags ("day1_entrance").
func Slug(a Action, d Day) string {
	return fmt.Sprintf("day%d_%s", d, a)
}
