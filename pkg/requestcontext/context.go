// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them; services read them. Keeping
// this package free of net/http lets services avoid transport imports.
//
// Usage in services (read values):
//
//	now := requestcontext.Now(ctx)
//	station := requestcontext.StationID(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithStation(ctx, "station-3", false)
package requestcontext

import (
	"context"
	"time"
)

type (
	stationIDKey   struct{}
	stationRoleKey struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// StationID retrieves the authenticated station identity from the context.
// Empty when the request is unauthenticated.
func StationID(ctx context.Context) string {
	if s, ok := ctx.Value(stationIDKey{}).(string); ok {
		return s
	}
	return ""
}

// IsAdmin reports whether the authenticated station carries the admin role.
func IsAdmin(ctx context.Context) bool {
	if b, ok := ctx.Value(stationRoleKey{}).(bool); ok {
		return b
	}
	return false
}

// WithStation injects a station identity and role into the context.
func WithStation(ctx context.Context, stationID string, admin bool) context.Context {
	ctx = context.WithValue(ctx, stationIDKey{}, stationID)
	return context.WithValue(ctx, stationRoleKey{}, admin)
}

// RequestID retrieves the correlation ID for the current request.
func RequestID(ctx context.Context) string {
	if s, ok := ctx.Value(requestIDKey{}).(string); ok {
		return s
	}
	return ""
}

// WithRequestID injects a correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time. All decisions and timestamps within
// a single request observe the same instant; falls back to the wall clock
// when no middleware ran (background jobs, tests that don't care).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
