package views

import (
	"strings"

	"supportdesk/internal/routes"
)

type section struct {
	Path   string
	Label  string
	Active bool
}

var sectionLabels = map[string]string{
	"/conversations": "Conversations",
	"/account":       "Account",
	"/team":          "Team",
	"/customers":     "Customers",
	"/sessions":      "Sessions",
	"/reporting":     "Reporting",
	"/integrations":  "Integrations",
	"/billing":       "Billing",
	"/settings":      "Settings",
}

// sectionsFor builds the dashboard nav with the section owning path marked active
func sectionsFor(path string) []section {
	out := make([]section, 0, len(routes.DashboardSections))
	for _, p := range routes.DashboardSections {
		out = append(out, section{
			Path:   p,
			Label:  sectionLabels[p],
			Active: path == p || strings.HasPrefix(path, p+"/"),
		})
	}
	return out
}
