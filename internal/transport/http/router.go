// Package httptransport composes the HTTP surface: middleware stack, the
// versioned API, and the operational endpoints. It delegates to domain
// handlers without embedding business logic.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	activityhandler "gatepass/internal/activity/handler"
	attendeehandler "gatepass/internal/attendee/handler"
	checkinhandler "gatepass/internal/checkin/handler"
	settingshandler "gatepass/internal/settings/handler"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/platform/middleware/requestid"
	"gatepass/pkg/platform/middleware/requesttime"
)

// Deps are the wired handlers and middleware the router mounts.
type Deps struct {
	Attendees *attendeehandler.Handler
	Checkin   *checkinhandler.Handler
	Settings  *settingshandler.Handler
	Activity  *activityhandler.Handler

	RequireStation func(http.Handler) http.Handler
	RequireAdmin   func(http.Handler) http.Handler

	Health http.HandlerFunc
}

// NewRouter wires the full HTTP surface. Every /api/v1 route sits behind
// station authentication; /healthz and /metrics stay open for probes and
// scrapers.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", deps.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(deps.RequireStation)

		deps.Attendees.Register(api)
		deps.Checkin.Register(api)
		deps.Activity.Register(api)
		deps.Settings.Register(api, deps.RequireAdmin)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	})

	return r
}
