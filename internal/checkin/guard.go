package checkin

import "gatepass/pkg/domain"

// EvaluateGate applies the authorization rule chain. Pure domain logic:
// no I/O, no side effects. First failing check wins.
//
// Check order:
//  1. Suppression window hit - the just-performed backstop for the gap
//     before a write becomes visible to the same station.
//  2. Completion flag - the durable source of truth.
//  3. Day window - the administrative per-day lockout.
//  4. Kit exclusivity - the kit is one entitlement across both days, so a
//     kit taken on the other day rejects here rather than as a completion.
//  5. Category permission - the static rule table.
func EvaluateGate(in GateInput) Decision {
	if in.Suppressed {
		return reject(ReasonDuplicateSubmission)
	}
	if in.Flags.Done(in.Action, in.Day) {
		return reject(ReasonAlreadyCompleted)
	}
	if !in.DayOpen {
		return reject(ReasonDayClosed)
	}
	if in.Action == domain.ActionKit && in.Flags.KitIssued() {
		return reject(ReasonKitAlreadyIssued)
	}
	if !IsPermitted(in.Category, in.Action, in.Day) {
		return reject(ReasonNotPermitted)
	}
	return accept()
}
