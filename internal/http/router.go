package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatHandler   http.Handler
	IngestHandler http.Handler
	HealthHandler http.Handler
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)

	// Add our middleware
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", deps.ChatHandler)
		r.Method(http.MethodPost, "/ingest", deps.IngestHandler)
		r.Method(http.MethodGet, "/health", deps.HealthHandler)
	})

	return r
}
