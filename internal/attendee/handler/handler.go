package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"gatepass/internal/attendee/models"
	"gatepass/internal/attendee/service"
	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// Service defines the attendee operations the transport needs.
type Service interface {
	ResolveScan(ctx context.Context, scanCode string) (*models.Attendee, error)
	Register(ctx context.Context, req service.RegisterRequest) (*models.Attendee, error)
	Search(ctx context.Context, query string, limit int) ([]*models.Attendee, error)
}

// Handler wires attendee endpoints to the attendee service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an attendee handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts attendee endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/attendees/scan/{code}", h.HandleResolveScan)
	r.Post("/attendees", h.HandleRegister)
	r.Get("/attendees", h.HandleSearch)
}

// HandleResolveScan handles GET /attendees/scan/{code} requests. A miss is
// the normal "unregistered badge" outcome: the 404 body carries the category
// suggested by the badge prefix so the station can prefill registration.
func (h *Handler) HandleResolveScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scanCode := chi.URLParam(r, "code")

	a, err := h.service.ResolveScan(ctx, scanCode)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			httputil.WriteJSON(w, http.StatusNotFound, NewScanMissResponse(scanCode))
			return
		}
		h.logger.ErrorContext(ctx, "scan resolution failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromAttendee(a))
}

// HandleRegister handles POST /attendees requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	a, err := h.service.Register(ctx, service.RegisterRequest{
		ScanCode: req.ScanCode,
		Category: req.Category,
		Profile: models.Profile{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"request_id", requestID,
			"category", req.Category,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "registration handled",
		"request_id", requestID,
		"attendee_code", a.Code,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromAttendee(a))
}

// HandleSearch handles GET /attendees?query= requests.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := h.service.Search(ctx, r.URL.Query().Get("query"), limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "attendee search failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromAttendees(out))
}

// NewScanMissResponse builds the 404 body for an unregistered badge.
func NewScanMissResponse(scanCode string) ScanMissResponse {
	resp := ScanMissResponse{
		Error:            string(dErrors.CodeNotFound),
		ErrorDescription: "attendee not registered",
	}
	if category := domain.CategoryFromScanPrefix(scanCode); category != "" {
		resp.SuggestedCategory = category.String()
	}
	return resp
}
