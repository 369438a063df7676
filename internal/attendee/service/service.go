package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	attendeemetrics "gatepass/internal/attendee/metrics"
	"gatepass/internal/attendee/models"
	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/requestcontext"
)

// AttendeeStore is the persistence surface the service needs.
type AttendeeStore interface {
	Create(ctx context.Context, a *models.Attendee) error
	FindByScanCode(ctx context.Context, scanCode string) (*models.Attendee, error)
	FindByID(ctx context.Context, id domain.AttendeeID) (*models.Attendee, error)
	Search(ctx context.Context, query string, limit int) ([]*models.Attendee, error)
}

// Service handles registration and scan resolution.
type Service struct {
	attendees AttendeeStore
	allocator *Allocator
	logger    *slog.Logger
	metrics   *attendeemetrics.Metrics
}

func NewService(attendees AttendeeStore, allocator *Allocator, logger *slog.Logger, metrics *attendeemetrics.Metrics) *Service {
	return &Service{
		attendees: attendees,
		allocator: allocator,
		logger:    logger,
		metrics:   metrics,
	}
}

// ResolveScan looks up an attendee by scan code. Lookup only, no side
// effects. A miss returns CodeNotFound; callers use it to branch into
// registration.
func (s *Service) ResolveScan(ctx context.Context, scanCode string) (*models.Attendee, error) {
	scanCode = strings.TrimSpace(scanCode)
	if scanCode == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "scan code is required")
	}

	a, err := s.attendees.FindByScanCode(ctx, scanCode)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementScanLookup("not_found")
			return nil, dErrors.New(dErrors.CodeNotFound, "attendee not registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "attendee lookup failed")
	}
	s.metrics.IncrementScanLookup("found")
	return a, nil
}

// RegisterRequest is the on-the-spot registration input.
type RegisterRequest struct {
	ScanCode string
	Category string
	Profile  models.Profile
}

// Register allocates the next sequential code for the category and creates
// the attendee. The allocator runs before the insert, so a failed insert
// burns the allocated number; that is acceptable lost-number behavior and
// never produces a duplicate.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.Attendee, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	code, err := s.allocator.Allocate(ctx, category)
	if err != nil {
		return nil, err
	}

	a, err := models.NewAttendee(domain.NewAttendeeID(), code, category, req.ScanCode, req.Profile, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.attendees.Create(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "scan code is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "registration failed")
	}

	s.metrics.IncrementRegistration(category.String())
	s.logger.InfoContext(ctx, "attendee registered",
		"request_id", requestcontext.RequestID(ctx),
		"attendee_code", a.Code,
		"category", category,
		"station_id", requestcontext.StationID(ctx),
	)
	return a, nil
}

// Search is the admin attendee search over name, email, phone, attendee
// code and scan code.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*models.Attendee, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	out, err := s.attendees.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "attendee search failed")
	}
	return out, nil
}
