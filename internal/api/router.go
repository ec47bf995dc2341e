// Package api assembles the HTTP surface: routing, middleware, and the
// resource handlers over the in-memory domain stores.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/eventease/server/internal/api/handlers"
	"github.com/eventease/server/internal/api/middleware"
	"github.com/eventease/server/internal/config"
	"github.com/eventease/server/internal/domain/attendance"
	"github.com/eventease/server/internal/domain/auth"
	"github.com/eventease/server/internal/domain/events"
	"github.com/eventease/server/internal/domain/sessions"
	"github.com/eventease/server/internal/domain/themes"
	"github.com/eventease/server/internal/domain/users"
	"github.com/eventease/server/internal/metrics"
	"github.com/eventease/server/internal/perf"
)

// Dependencies carries the constructed stores and services into the router.
type Dependencies struct {
	Catalog   *events.Store
	Accounts  *auth.Service
	Tokens    *auth.TokenManager
	Directory *users.Directory
	Sessions  *sessions.Manager
	Ledger    *attendance.Ledger
	Themes    *themes.Store
	Perf      *perf.Monitor

	Version   string
	GitCommit string
	BuildDate string
}

// NewRouter builds the HTTP handler chain. The returned shutdown func
// releases background resources (the rate limiter's cleanup goroutine) and
// must be called when the server stops.
func NewRouter(cfg config.Config, logger zerolog.Logger, deps Dependencies) (http.Handler, func()) {
	env := cfg.Environment

	eventsHandler := handlers.NewEventsHandler(deps.Catalog, deps.Perf, env)
	authHandler := handlers.NewAuthHandler(deps.Accounts, deps.Directory, deps.Sessions, deps.Tokens, env)
	sessionsHandler := handlers.NewSessionsHandler(deps.Sessions, env)
	usersHandler := handlers.NewUsersHandler(deps.Directory, deps.Ledger, env)
	attendanceHandler := handlers.NewAttendanceHandler(deps.Ledger, env)
	themesHandler := handlers.NewThemesHandler(deps.Themes, env)

	authRequired := middleware.RequireSession(deps.Tokens, deps.Sessions, env)

	// One limiter store serves both tiers. The login route sets its tier
	// before re-entering the limiter, so the inner check sees the tighter
	// bucket; every other route is checked once at the public tier by the
	// outer chain.
	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	loginTier := middleware.WithRateLimitTierHandler(middleware.TierLogin)
	loginLimited := func(h http.Handler) http.Handler { return loginTier(limiter.Middleware(h)) }

	mux := http.NewServeMux()

	mux.Handle("GET /healthz", handlers.Healthz())
	mux.Handle("GET /readyz", handlers.Readyz())
	mux.Handle("GET /version", VersionHandler(deps.Version, deps.GitCommit, deps.BuildDate))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("GET /api/v1/events", http.HandlerFunc(eventsHandler.List))
	mux.Handle("GET /api/v1/events/{id}", http.HandlerFunc(eventsHandler.Get))

	mux.Handle("POST /api/v1/auth/register", http.HandlerFunc(authHandler.Register))
	mux.Handle("POST /api/v1/auth/login", loginLimited(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /api/v1/auth/exists", http.HandlerFunc(authHandler.Exists))

	mux.Handle("GET /api/v1/sessions", http.HandlerFunc(sessionsHandler.ListActive))
	mux.Handle("POST /api/v1/sessions/current/touch", authRequired(http.HandlerFunc(sessionsHandler.Touch)))
	mux.Handle("DELETE /api/v1/sessions/current", authRequired(http.HandlerFunc(sessionsHandler.Logout)))

	mux.Handle("GET /api/v1/users", http.HandlerFunc(usersHandler.List))
	mux.Handle("GET /api/v1/users/{id}", http.HandlerFunc(usersHandler.Get))
	mux.Handle("PUT /api/v1/users/{id}", http.HandlerFunc(usersHandler.Update))
	mux.Handle("DELETE /api/v1/users/{id}", http.HandlerFunc(usersHandler.Delete))
	mux.Handle("GET /api/v1/users/{id}/registrations", http.HandlerFunc(usersHandler.Registrations))

	mux.Handle("POST /api/v1/events/{id}/registrations", authRequired(http.HandlerFunc(attendanceHandler.Register)))
	mux.Handle("GET /api/v1/events/{id}/registrations", http.HandlerFunc(attendanceHandler.EventRegistrations))
	mux.Handle("POST /api/v1/events/{id}/registrations/{userID}/check-in", http.HandlerFunc(attendanceHandler.CheckIn))
	mux.Handle("POST /api/v1/events/{id}/registrations/{userID}/no-show", http.HandlerFunc(attendanceHandler.NoShow))
	mux.Handle("GET /api/v1/attendance/stats", http.HandlerFunc(attendanceHandler.Stats))

	mux.Handle("GET /api/v1/users/{id}/theme", http.HandlerFunc(themesHandler.Get))
	mux.Handle("POST /api/v1/users/{id}/theme/toggle", http.HandlerFunc(themesHandler.Toggle))

	var handler http.Handler = mux
	handler = limiter.Middleware(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.SecurityHeaders(env == "production")(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler, limiter.Stop
}
