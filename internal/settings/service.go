package settings

import (
	"context"
	"log/slog"

	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/requestcontext"
)

// Service fronts the window store. Admin authorization happens in the
// transport middleware; the service applies no guard logic of its own.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Get(ctx context.Context) (Window, error) {
	w, err := s.store.Get(ctx)
	if err != nil {
		return Window{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "event window unavailable")
	}
	return w, nil
}

func (s *Service) SetDay(ctx context.Context, day domain.Day, enabled bool) (Window, error) {
	w, err := s.store.SetDay(ctx, day, enabled)
	if err != nil {
		return Window{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "event window update failed")
	}
	s.logger.InfoContext(ctx, "event window updated",
		"request_id", requestcontext.RequestID(ctx),
		"day", int(day),
		"enabled", enabled,
		"station_id", requestcontext.StationID(ctx),
	)
	return w, nil
}
