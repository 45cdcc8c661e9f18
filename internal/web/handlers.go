package web

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"supportdesk/internal/auth"
	"supportdesk/internal/routes"
	"supportdesk/internal/ui"
	"supportdesk/internal/views"
)

// handleApp resolves the request path against the active route table
func (s *Server) handleApp(w http.ResponseWriter, r *http.Request) {
	state, user := s.provider.StateOf(r)
	res := routes.Resolve(routes.StateOf(state), r.URL.Path)
	MetricResolutions.WithLabelValues(res.State.String(), res.Kind.String()).Inc()

	switch res.Kind {
	case routes.Pending:
		s.render(w, r, func() error { return s.renderer.RenderLoading(w) })
	case routes.Redirect:
		http.Redirect(w, r, res.Location, http.StatusFound)
	default:
		s.render(w, r, func() error {
			return s.renderer.Render(w, http.StatusOK, views.Request{
				View:   res.Route.View,
				Path:   r.URL.Path,
				Params: res.Params,
				Query:  r.URL.Query(),
				User:   user,
			})
		})
	}
}

// handleLogin checks credentials and starts a session
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")
	redirect := r.PostForm.Get(routes.RedirectParam)

	fail := func(status int, result, message string) {
		MetricLoginAttempts.WithLabelValues(result).Inc()
		s.render(w, r, func() error {
			return s.renderer.Render(w, status, views.Request{
				View:  routes.ViewLogin,
				Path:  routes.LoginPath,
				Query: map[string][]string{routes.RedirectParam: {redirect}},
				Email: email,
				Error: message,
			})
		})
	}

	if !s.provider.Ready() {
		MetricLoginAttempts.WithLabelValues("loading").Inc()
		s.render(w, r, func() error { return s.renderer.RenderLoading(w) })
		return
	}

	store := s.provider.Store()
	if store == nil {
		fail(http.StatusServiceUnavailable, "unavailable", "Sign-in is unavailable right now. Please try again later.")
		return
	}

	ip := clientIP(r)
	if !s.limiter.Allow(ip) {
		w.Header().Set("Retry-After", "60")
		fail(http.StatusTooManyRequests, "rate_limited", "Too many attempts. Please wait a minute and try again.")
		return
	}
	if !store.CheckIPAllowed(ip) {
		ui.LogStatus("warning", "Login from non-whitelisted address: "+ip)
		fail(http.StatusForbidden, "ip_denied", auth.ErrIPNotAllowed.Error())
		return
	}

	user, err := store.ValidateCredentials(email, r.PostForm.Get("password"))
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			MetricErrorsTotal.WithLabelValues("login").Inc()
		}
		fail(http.StatusUnauthorized, "invalid", auth.ErrInvalidCredentials.Error())
		return
	}

	if err := s.provider.Sessions().SetCookie(w, user); err != nil {
		MetricErrorsTotal.WithLabelValues("session").Inc()
		ui.LogStatus("error", "Issue session: "+err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	MetricLoginAttempts.WithLabelValues("success").Inc()
	http.Redirect(w, r, routes.SafeRedirect(redirect), http.StatusSeeOther)
}

// handleLogout ends the session
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.provider.Sessions().ClearCookie(w)
	http.Redirect(w, r, routes.LoginPath, http.StatusSeeOther)
}

// render runs fn and turns a template failure into a 500
func (s *Server) render(w http.ResponseWriter, r *http.Request, fn func() error) {
	if err := fn(); err != nil {
		MetricErrorsTotal.WithLabelValues("render").Inc()
		ui.LogStatus("error", "Render "+r.URL.Path+": "+err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// clientIP returns the host part of RemoteAddr (already rewritten by RealIP)
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
