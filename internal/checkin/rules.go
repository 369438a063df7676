package checkin

import "gatepass/pkg/domain"

// The category rule table is static configuration, separated from the
// guard's sequencing so eligibility rules and duplicate/lockout rules can
// be tested independently.
//
// Full-access categories get entrance, lunch and kit on both days plus
// dinner on day 1 only (there is no day-2 dinner service). Limited-access
// categories get entrance and lunch on both days. Unknown categories are
// permitted nothing; that is an empty set, not an error.

var fullAccess = map[domain.Category]bool{
	domain.CategoryAlumni:  true,
	domain.CategoryFaculty: true,
}

var limitedAccess = map[domain.Category]bool{
	domain.CategoryVolunteer: true,
	domain.CategoryStudent:   true,
	domain.CategoryPress:     true,
}

// PermittedActions returns the actions a category may perform on a day.
func PermittedActions(category domain.Category, day domain.Day) []domain.Action {
	switch {
	case fullAccess[category]:
		actions := []domain.Action{domain.ActionEntrance, domain.ActionLunch, domain.ActionKit}
		if day == domain.Day1 {
			actions = append(actions, domain.ActionDinner)
		}
		return actions
	case limitedAccess[category]:
		return []domain.Action{domain.ActionEntrance, domain.ActionLunch}
	}
	return nil
}

// IsPermitted reports whether the rule table allows (category, action, day).
func IsPermitted(category domain.Category, action domain.Action, day domain.Day) bool {
	for _, a := range PermittedActions(category, day) {
		if a == action {
			return true
		}
	}
	return false
}
