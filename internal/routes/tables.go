package routes

const (
	// LoginPath receives unauthenticated misses
	LoginPath = "/login"
	// LandingPath receives authenticated misses
	LandingPath = "/conversations"
	// ClosedConversationsPath lists closed conversations
	ClosedConversationsPath = "/conversations/closed"
	// RedirectParam carries the originally requested path to the login page
	RedirectParam = "redirect"
)

// sharedRoutes are reachable whether or not the visitor is signed in
var sharedRoutes = []Route{
	{Pattern: "/login", View: ViewLogin},
	{Pattern: "/register/:invite", View: ViewRegister},
	{Pattern: "/register", View: ViewRegister},
	{Pattern: "/verify", View: ViewEmailVerification},
	{Pattern: "/reset-password", View: ViewRequestPasswordReset},
	{Pattern: "/reset", View: ViewPasswordReset},
	{Pattern: "/reset-password-requested", View: ViewPasswordResetRequested},
	{Pattern: "/demo", View: ViewDemo},
	{Pattern: "/bot/demo", View: ViewBotDemo},
	{Pattern: "/sandbox", View: ViewSandbox},
	{Pattern: "/share", View: ViewSharedConversation},
}

// DashboardSections are the top-level paths served by the dashboard
var DashboardSections = []string{
	"/conversations",
	"/account",
	"/team",
	"/customers",
	"/sessions",
	"/reporting",
	"/integrations",
	"/billing",
	"/settings",
}

// Public is active for visitors who are not signed in
var Public = Table{
	Name:     "public",
	Routes:   sharedRoutes,
	Fallback: loginRedirect,
}

// Private is active for signed-in agents
var Private = Table{
	Name:     "private",
	Routes:   privateRoutes(),
	Fallback: func(string) string { return LandingPath },
}

func privateRoutes() []Route {
	routes := make([]Route, 0, len(sharedRoutes)+len(DashboardSections)+1)
	routes = append(routes, sharedRoutes...)
	routes = append(routes, Route{Pattern: "/", View: ViewDashboard, Exact: true})
	for _, section := range DashboardSections {
		routes = append(routes, Route{Pattern: section, View: ViewDashboard})
	}
	return routes
}

// TableFor returns the active table for s; Loading has none
func TableFor(s State) (Table, bool) {
	switch s {
	case Unauthenticated:
		return Public, true
	case Authenticated:
		return Private, true
	default:
		return Table{}, false
	}
}
