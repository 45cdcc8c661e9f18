package routes

import (
	"net/url"
	"strings"
)

// Kind is the outcome of resolving a request path
type Kind int

const (
	// Pending renders no route content while auth is loading
	Pending Kind = iota
	// Render serves the matched view
	Render
	// Redirect sends the client to Location
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Resolution is the result of Resolve
type Resolution struct {
	Kind     Kind
	State    State
	Table    string
	Route    Route
	Params   Params
	Location string
}

// Resolve picks the table for state and matches path against it
func Resolve(state State, path string) Resolution {
	table, ok := TableFor(state)
	if !ok {
		return Resolution{Kind: Pending, State: state}
	}

	if path == "" {
		path = "/"
	}

	route, params, ok := table.Lookup(path)
	if !ok {
		return Resolution{
			Kind:     Redirect,
			State:    state,
			Table:    table.Name,
			Location: table.Fallback(path),
		}
	}
	return Resolution{
		Kind:   Render,
		State:  state,
		Table:  table.Name,
		Route:  route,
		Params: params,
	}
}

// redirectEscaper keeps '/' readable but stops the path from breaking out of the query value
var redirectEscaper = strings.NewReplacer("%", "%25", "&", "%26", "+", "%2B", "#", "%23", "?", "%3F", " ", "%20")

func loginRedirect(path string) string {
	return LoginPath + "?" + RedirectParam + "=" + redirectEscaper.Replace(path)
}

// SafeRedirect returns target when it is a same-origin path, otherwise "/".
// The value comes from the login form's redirect parameter.
func SafeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\\\r\n") {
		return "/"
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return target
}
