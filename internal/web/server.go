// Package web serves the support desk over HTTP.
//
// Every page request is resolved against the route tables using the auth
// state of the request; the server never renders route content while that
// state is still loading.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"supportdesk/internal/auth"
	"supportdesk/internal/config"
	"supportdesk/internal/theme"
	"supportdesk/internal/ui"
	"supportdesk/internal/views"
)

// Server is the support desk HTTP front end
type Server struct {
	cfg         *config.Config
	provider    *auth.Provider
	sheet       *theme.Stylesheet
	renderer    *views.Renderer
	limiter     *auth.RateLimiter
	logRequests bool
	version     string

	handler http.Handler
	srv     *http.Server
	ln      net.Listener
}

// NewServer wires the stylesheet, templates and router
func NewServer(cfg *config.Config, provider *auth.Provider, sheet *theme.Stylesheet, version string) (*Server, error) {
	renderer, err := views.New(sheet)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	s := &Server{
		cfg:         cfg,
		provider:    provider,
		sheet:       sheet,
		renderer:    renderer,
		limiter:     auth.NewRateLimiter(cfg.LoginRateLimit),
		logRequests: true,
		version:     version,
	}
	s.handler = s.buildRouter()
	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on cfg.Listen and serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then drains in-flight requests
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go s.pruneLimiter(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	ui.LogStatus("success", "Listening on "+ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// pruneLimiter drops idle login buckets once a minute
func (s *Server) pruneLimiter(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Prune(10 * time.Minute)
		}
	}
}
