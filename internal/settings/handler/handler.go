package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatepass/internal/settings"
	"gatepass/pkg/domain"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// Service defines the window operations the transport needs.
type Service interface {
	Get(ctx context.Context) (settings.Window, error)
	SetDay(ctx context.Context, day domain.Day, enabled bool) (settings.Window, error)
}

// Handler wires the event window endpoints to the settings service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a settings handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the window endpoints on the router. The caller gates the
// PUT behind the admin middleware.
func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/settings/window", h.HandleGetWindow)
	r.With(requireAdmin).Put("/settings/window", h.HandleSetWindow)
}

// HandleGetWindow handles GET /settings/window requests.
func (h *Handler) HandleGetWindow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	window, err := h.service.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "window read failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromWindow(window))
}

// HandleSetWindow handles PUT /settings/window requests. One day per call;
// flipping a day off does not touch the other day's switch.
func (h *Handler) HandleSetWindow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SetWindowRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	window, err := h.service.SetDay(ctx, req.ParsedDay(), *req.Enabled)
	if err != nil {
		h.logger.ErrorContext(ctx, "window update failed",
			"request_id", requestID,
			"day", req.Day,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromWindow(window))
}
