package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gatepass/internal/checkin"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// Service defines the check-in operation the transport needs.
type Service interface {
	RequestAction(ctx context.Context, req checkin.Request) (checkin.Decision, error)
}

// Handler wires the check-in endpoint to the check-in service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a check-in handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the check-in endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/checkin", h.HandleCheckin)
}

// HandleCheckin handles POST /checkin requests. Acceptance is 200, rejection
// is 409 with the concrete reason; both are normal station outcomes. Errors
// are reserved for invalid input and storage faults.
func (h *Handler) HandleCheckin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CheckinRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	decision, err := h.service.RequestAction(ctx, checkin.Request{
		AttendeeID: req.ParsedAttendeeID(),
		Action:     req.ParsedAction(),
		Day:        req.ParsedDay(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "check-in failed",
			"request_id", requestID,
			"attendee_id", req.AttendeeID,
			"action", req.Action,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "check-in handled",
		"request_id", requestID,
		"attendee_id", req.AttendeeID,
		"action", req.Action,
		"day", req.Day,
		"accepted", decision.Accepted,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	status := http.StatusOK
	if !decision.Accepted {
		status = http.StatusConflict
	}
	httputil.WriteJSON(w, status, FromDecision(decision))
}
