package routes

import "supportdesk/internal/auth"

// State selects the active route table
type State int

const (
	// Loading means authentication has not settled yet
	Loading State = iota
	// Unauthenticated activates the public table
	Unauthenticated
	// Authenticated activates the private table
	Authenticated
)

// StateOf maps the auth contract onto a routing state.
// IsAuthenticated is ignored while Loading is set.
func StateOf(a auth.State) State {
	switch {
	case a.Loading:
		return Loading
	case a.IsAuthenticated:
		return Authenticated
	default:
		return Unauthenticated
	}
}

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
