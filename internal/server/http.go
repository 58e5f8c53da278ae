// Package server wires the HTTP router for the API.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	healthhandler "orgsphere/backend/internal/health/handler"
	identityhandler "orgsphere/backend/internal/identity/handler"
	"orgsphere/backend/internal/security"
	"orgsphere/backend/internal/server/middleware"
	tenanthandler "orgsphere/backend/internal/tenant/handler"
)

// Deps holds the handler dependencies for the router.
type Deps struct {
	// Tenant serves the organization lifecycle endpoints.
	Tenant *tenanthandler.Handler
	// Identity serves POST /admin/login.
	Identity *identityhandler.Handler
	// Tokens validates Bearer session tokens for protected routes.
	Tokens *security.TokenProvider
	// HealthPinger is used by GET /health for readiness (e.g. *sql.DB). May be nil.
	HealthPinger healthhandler.Pinger
	// CORSOrigins is the allowed origin list; "*" allows all.
	CORSOrigins []string
	// Logger receives request logs.
	Logger zerolog.Logger
}

// NewRouter builds the chi router with the middleware stack and all routes.
//
// Route → handler mapping:
//   - POST   /admin/login  → internal/identity/handler (public)
//   - POST   /org/create   → internal/tenant/handler (public, self-service)
//   - GET    /org/get      → internal/tenant/handler (public)
//   - PUT    /org/update   → internal/tenant/handler (Bearer session)
//   - DELETE /org/delete   → internal/tenant/handler (Bearer session)
//   - GET    /health       → internal/health/handler (public)
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", healthhandler.NewHandler(deps.HealthPinger).Health)

	r.Post("/admin/login", deps.Identity.Login)
	r.Post("/org/create", deps.Tenant.Create)
	r.Get("/org/get", deps.Tenant.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(deps.Tokens))
		r.Put("/org/update", deps.Tenant.Update)
		r.Delete("/org/delete", deps.Tenant.Delete)
	})

	return r
}
