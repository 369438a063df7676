package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gatepass/internal/activity/models"
	attendeemodels "gatepass/internal/attendee/models"
	"gatepass/pkg/domain"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// Service defines the activity operations the transport needs.
type Service interface {
	Recent(ctx context.Context, limit int) ([]models.Record, error)
	RecentFor(ctx context.Context, id domain.AttendeeID, limit int) ([]models.Record, error)
	Summary(ctx context.Context) (*attendeemodels.Summary, error)
}

// Handler wires the activity feed and summary endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an activity handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts activity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/activity", h.HandleRecent)
	r.Get("/activity/summary", h.HandleSummary)
}

// HandleRecent handles GET /activity requests, optionally filtered to one
// attendee with ?attendee_id=.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var (
		records []models.Record
		err     error
	)
	if raw := r.URL.Query().Get("attendee_id"); raw != "" {
		id, parseErr := domain.ParseAttendeeID(raw)
		if parseErr != nil {
			httputil.WriteError(w, parseErr)
			return
		}
		records, err = h.service.RecentFor(ctx, id, limit)
	} else {
		records, err = h.service.Recent(ctx, limit)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "activity read failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// HandleSummary handles GET /activity/summary requests.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sum, err := h.service.Summary(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "summary read failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSummary(sum))
}
