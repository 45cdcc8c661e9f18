package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/dynamic-styles.css", s.sheet.ServeHTTP)

	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	// Everything else goes through the route tables
	r.Get("/*", s.handleApp)
	r.Head("/*", s.handleApp)

	return r
}

// handleHealth reports liveness and whether auth has finished loading
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	if !s.provider.Ready() {
		status = "loading"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"version": s.version,
	})
}
