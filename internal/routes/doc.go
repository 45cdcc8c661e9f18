// Package routes holds the public and private route tables and selects
// between them from the authentication state of a request.
//
// Resolution is a pure function of (State, path):
//
//	Loading         → Pending, nothing is rendered
//	Unauthenticated → public table, misses redirect to /login?redirect=<path>
//	Authenticated   → private table, misses redirect to /conversations
//
// Tables are evaluated first match wins. A pattern matches its own path and,
// unless it is exact, every path below it on a segment boundary, so "/login"
// matches "/login/help" but not "/loginx".
package routes
