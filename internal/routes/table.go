package routes

import "strings"

// View identifies the page a route renders
type View string

const (
	ViewLogin                  View = "login"
	ViewRegister               View = "register"
	ViewEmailVerification      View = "verify"
	ViewRequestPasswordReset   View = "reset-password"
	ViewPasswordReset          View = "reset"
	ViewPasswordResetRequested View = "reset-password-requested"
	ViewDemo                   View = "demo"
	ViewBotDemo                View = "bot-demo"
	ViewSandbox                View = "sandbox"
	ViewSharedConversation     View = "share"
	ViewDashboard              View = "dashboard"
)

// Route binds a path pattern to a view
type Route struct {
	Pattern string
	View    View
	Exact   bool
}

// Params holds the values of :name segments
type Params map[string]string

// Match reports whether path matches the route and extracts its params
func (r Route) Match(path string) (Params, bool) {
	pattern := splitPath(r.Pattern)
	segments := splitPath(path)

	if len(segments) < len(pattern) {
		return nil, false
	}
	if r.Exact && len(segments) != len(pattern) {
		return nil, false
	}

	var params Params
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = Params{}
			}
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// Table is an ordered route list with a fallback for misses
type Table struct {
	Name   string
	Routes []Route
	// Fallback builds the redirect location for an unmatched path
	Fallback func(path string) string
}

// Lookup returns the first route matching path
func (t Table) Lookup(path string) (Route, Params, bool) {
	for _, r := range t.Routes {
		if params, ok := r.Match(path); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

// splitPath cleans duplicate and trailing slashes and returns the segments
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
