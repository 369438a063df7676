package service

import (
	"context"

	"gatepass/internal/activity/models"
	attendeemodels "gatepass/internal/attendee/models"
	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// ActivityStore is the read surface over the append-only log.
type ActivityStore interface {
	Recent(ctx context.Context, limit int) ([]models.Record, error)
	RecentFor(ctx context.Context, id domain.AttendeeID, limit int) ([]models.Record, error)
}

// Summarizer recomputes dashboard counts from the attendee table.
type Summarizer interface {
	Summary(ctx context.Context) (*attendeemodels.Summary, error)
}

// Service serves the audit feed and the derived dashboard view.
type Service struct {
	log        ActivityStore
	summarizer Summarizer
}

func NewService(log ActivityStore, summarizer Summarizer) *Service {
	return &Service{log: log, summarizer: summarizer}
}

// Recent returns the newest records first, capped at a sane page size.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	out, err := s.log.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "activity feed unavailable")
	}
	return out, nil
}

// RecentFor returns the newest records for one attendee.
func (s *Service) RecentFor(ctx context.Context, id domain.AttendeeID, limit int) ([]models.Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	out, err := s.log.RecentFor(ctx, id, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "activity feed unavailable")
	}
	return out, nil
}

// Summary recomputes the dashboard counts on demand.
func (s *Service) Summary(ctx context.Context) (*attendeemodels.Summary, error) {
	sum, err := s.summarizer.Summary(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "summary unavailable")
	}
	return sum, nil
}
