package checkin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	activitymodels "gatepass/internal/activity/models"
	attendeemodels "gatepass/internal/attendee/models"
	checkinmetrics "gatepass/internal/checkin/metrics"
	"gatepass/internal/checkin/suppression"
	"gatepass/internal/settings"
	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/platform/tx"
	"gatepass/pkg/requestcontext"
)

// AttendeeStore is the slice of the attendee store the guard's accept path
// needs. ApplyAction must be a conditional mutation: it fails with
// sentinel.ErrInvalidState when the flag is already set, which is how
// concurrent accepts collapse to one winner.
type AttendeeStore interface {
	FindByID(ctx context.Context, id domain.AttendeeID) (*attendeemodels.Attendee, error)
	ApplyAction(ctx context.Context, id domain.AttendeeID, action domain.Action, day domain.Day) error
}

// ActivityAppender appends the audit record inside the accept transaction.
type ActivityAppender interface {
	Append(ctx context.Context, rec activitymodels.Record) error
}

// WindowReader reads the per-day lockout switches.
type WindowReader interface {
	Get(ctx context.Context) (settings.Window, error)
}

// Service evaluates action requests and applies accepted ones exactly once.
type Service struct {
	attendees   AttendeeStore
	activity    ActivityAppender
	window      WindowReader
	suppression suppression.Store
	tx          tx.Runner
	logger      *slog.Logger
	metrics     *checkinmetrics.Metrics
}

func NewService(
	attendees AttendeeStore,
	activity ActivityAppender,
	window WindowReader,
	supp suppression.Store,
	txRunner tx.Runner,
	logger *slog.Logger,
	metrics *checkinmetrics.Metrics,
) *Service {
	return &Service{
		attendees:   attendees,
		activity:    activity,
		window:      window,
		suppression: supp,
		tx:          txRunner,
		logger:      logger,
		metrics:     metrics,
	}
}

// Request is one station's action request. PerformedBy and the decision
// time come from the request context.
type Request struct {
	AttendeeID domain.AttendeeID
	Action     domain.Action
	Day        domain.Day
}

// RequestAction runs the guard and, on acceptance, applies the action as a
// single atomic unit: flag update plus activity record in one transaction.
// The suppression mark happens only after the commit, so a failed write
// looks like a rejection on retry, never like silent data loss.
//
// The returned Decision covers authorization outcomes; the error covers
// validation and storage failures only. Rejections are never retried by
// the core.
func (s *Service) RequestAction(ctx context.Context, req Request) (Decision, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveCheckinLatency(time.Since(start))
	}()

	if req.AttendeeID.IsZero() {
		return Decision{}, dErrors.New(dErrors.CodeBadRequest, "attendee id is required")
	}

	now := requestcontext.Now(ctx)

	a, err := s.attendees.FindByID(ctx, req.AttendeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Decision{}, dErrors.New(dErrors.CodeNotFound, "attendee not found")
		}
		return Decision{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "attendee lookup failed")
	}

	window, err := s.window.Get(ctx)
	if err != nil {
		return Decision{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "event window unavailable")
	}

	key := suppression.Key{AttendeeID: a.ID, Action: req.Action, Day: req.Day}
	suppressed, err := s.suppression.Seen(ctx, key, now)
	if err != nil {
		// The window is a best-effort backstop; the persisted flag is the
		// correctness guarantee. Degrade rather than block the station.
		s.logger.WarnContext(ctx, "suppression check failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		suppressed = false
	}

	decision := EvaluateGate(GateInput{
		Category:   a.Category,
		Flags:      a.Flags,
		Action:     req.Action,
		Day:        req.Day,
		DayOpen:    window.Enabled(req.Day),
		Suppressed: suppressed,
	})
	if !decision.Accepted {
		s.recordDecision(ctx, a, req, decision)
		return decision, nil
	}

	rec := activitymodels.Record{
		AttendeeID:   a.ID,
		AttendeeCode: a.Code,
		Action:       req.Action,
		Day:          req.Day,
		PerformedBy:  requestcontext.StationID(ctx),
		PerformedAt:  now,
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.attendees.ApplyAction(txCtx, a.ID, req.Action, req.Day); err != nil {
			return err
		}
		return s.activity.Append(txCtx, rec)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			// Another station won the race between our read and the
			// conditional update. Deterministic rejection, not a fault.
			decision = reject(ReasonAlreadyCompleted)
			if req.Action == domain.ActionKit {
				decision = reject(ReasonKitAlreadyIssued)
			}
			s.recordDecision(ctx, a, req, decision)
			return decision, nil
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return Decision{}, dErrors.New(dErrors.CodeNotFound, "attendee not found")
		}
		return Decision{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "check-in could not be recorded")
	}

	if err := s.suppression.Mark(ctx, key, now); err != nil {
		s.logger.WarnContext(ctx, "suppression mark failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}

	s.recordDecision(ctx, a, req, decision)
	return decision, nil
}

func (s *Service) recordDecision(ctx context.Context, a *attendeemodels.Attendee, req Request, d Decision) {
	result := "accepted"
	if !d.Accepted {
		result = string(d.Reason)
	}
	s.metrics.IncrementDecision(string(req.Action), int(req.Day), result)

	if d.Accepted {
		s.logger.InfoContext(ctx, "action recorded",
			"request_id", requestcontext.RequestID(ctx),
			"attendee_code", a.Code,
			"action", req.Action,
			"day", int(req.Day),
			"station_id", requestcontext.StationID(ctx),
		)
		return
	}
	s.logger.DebugContext(ctx, "action rejected",
		"request_id", requestcontext.RequestID(ctx),
		"attendee_code", a.Code,
		"action", req.Action,
		"day", int(req.Day),
		"reason", d.Reason,
	)
}
