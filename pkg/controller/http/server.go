package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/seclens/auditdash/frontend"
	"github.com/seclens/auditdash/pkg/usecase"
)

// Server represents the HTTP server serving the dashboard and its JSON API
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server. reload is invoked asynchronously by
// POST /api/reload and may be nil to disable reloading.
func NewServer(
	ctx context.Context,
	addr string,
	queryUC *usecase.Query,
	reload func(ctx context.Context) error,
) (*Server, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	reportsHandler := NewReportsHandler(queryUC, reload)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Get("/reports", reportsHandler.HandleList)
		r.Get("/reports/{filename}", reportsHandler.HandleGet)
		r.Post("/reload", reportsHandler.HandleReload)
	})

	// Frontend routes (embedded dashboard shell)
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		router.Handle("/*", http.FileServer(fs))
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}

	return server, nil
}

// Router exposes the handler tree, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "auditdash",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleFallbackHome handles the root path when the frontend is not embedded
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>AuditDash</title></head>
<body>
  <h1>AuditDash</h1>
  <p>Security audit report dashboard. The frontend bundle is not embedded in
  this build; the JSON API is available under <a href="/api/reports">/api/reports</a>.</p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}
