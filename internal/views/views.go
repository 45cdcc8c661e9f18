// Package views renders the HTML pages behind each route.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"supportdesk/internal/auth"
	"supportdesk/internal/routes"
	"supportdesk/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageFiles maps every view to its template file and title
var pageFiles = map[routes.View]struct{ file, title string }{
	routes.ViewLogin:                  {"login.html", "Log in"},
	routes.ViewRegister:               {"register.html", "Sign up"},
	routes.ViewEmailVerification:      {"verify.html", "Verify email"},
	routes.ViewRequestPasswordReset:   {"reset_password.html", "Reset password"},
	routes.ViewPasswordReset:          {"reset.html", "Reset password"},
	routes.ViewPasswordResetRequested: {"reset_password_requested.html", "Check your email"},
	routes.ViewDemo:                   {"demo.html", "Demo"},
	routes.ViewBotDemo:                {"bot_demo.html", "Bot demo"},
	routes.ViewSandbox:                {"sandbox.html", "Sandbox"},
	routes.ViewSharedConversation:     {"share.html", "Shared conversation"},
	routes.ViewDashboard:              {"dashboard.html", "Dashboard"},
	viewLoading:                       {"loading.html", "Loading"},
}

const viewLoading routes.View = "loading"

// Renderer executes the page templates against the installed stylesheet
type Renderer struct {
	pages map[routes.View]*template.Template
	base  *template.Template
	sheet *theme.Stylesheet
}

// New parses every page template
func New(sheet *theme.Stylesheet) (*Renderer, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html", "templates/components.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[routes.View]*template.Template, len(pageFiles))
	for view, page := range pageFiles {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", view, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+page.file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", page.file, err)
		}
		pages[view] = clone
	}

	return &Renderer{pages: pages, base: base, sheet: sheet}, nil
}

// Request carries everything a page may show
type Request struct {
	View   routes.View
	Path   string
	Params routes.Params
	Query  map[string][]string
	User   *auth.User
	Error  string
	Email  string
}

func (r Request) query(key string) string {
	if v := r.Query[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

type pageData struct {
	Title   string
	View    routes.View
	StyleID string
	CSS     template.CSS
	User    *auth.User

	Error    string
	Email    string
	Redirect string
	Invite   string
	Token    string

	ConversationID string
	Heading        string
	Sections       []section
	ShowClosedList bool

	Palette            []theme.Variable
	Closing            template.HTML
	ClosingHighlighted template.HTML
}

// Render writes the page for req.View with the given status code
func (v *Renderer) Render(w http.ResponseWriter, status int, req Request) error {
	tmpl, ok := v.pages[req.View]
	if !ok {
		return fmt.Errorf("no template for view %q", req.View)
	}

	data, err := v.pageData(req)
	if err != nil {
		return fmt.Errorf("render %s: %w", req.View, err)
	}

	// Render into a buffer so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", req.View, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = io.Copy(w, &buf)
	return err
}

// RenderLoading writes the placeholder shown while authentication is unresolved
func (v *Renderer) RenderLoading(w http.ResponseWriter) error {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Cache-Control", "no-store")
	return v.Render(w, http.StatusServiceUnavailable, Request{View: viewLoading})
}

func (v *Renderer) pageData(req Request) (pageData, error) {
	palette := v.sheet.Palette()
	data := pageData{
		Title:    pageFiles[req.View].title,
		View:     req.View,
		StyleID:  theme.StylesheetID,
		CSS:      template.CSS(v.sheet.CSS()),
		User:     req.User,
		Error:    req.Error,
		Email:    req.Email,
		Redirect: routes.SafeRedirect(req.query(routes.RedirectParam)),
		Invite:   req.Params["invite"],
		Token:    req.query("token"),
	}
	if data.Email == "" {
		data.Email = req.query("email")
	}

	var err error
	switch req.View {
	case routes.ViewSharedConversation:
		data.ConversationID = req.query("cid")
	case routes.ViewSandbox:
		data.Palette = palette.Variables()
		if data.Closing, err = v.ConversationClosing(false); err != nil {
			return data, err
		}
		data.ClosingHighlighted, err = v.ConversationClosing(true)
	case routes.ViewDashboard:
		err = v.dashboardData(&data, req)
	}
	return data, err
}

func (v *Renderer) dashboardData(data *pageData, req Request) error {
	data.Sections = sectionsFor(req.Path)
	data.Heading = "Inbox"
	for _, s := range data.Sections {
		if s.Active {
			data.Heading = s.Label
		}
	}

	rest := strings.TrimPrefix(req.Path, "/conversations")
	if rest == req.Path {
		return nil
	}
	id := strings.Trim(rest, "/")
	switch {
	case id == "closed":
		data.Heading = "Closed"
		data.ShowClosedList = true
	case id != "" && !strings.Contains(id, "/"):
		data.ConversationID = id
		if req.query("status") == "closed" {
			closing, err := v.ConversationClosing(true)
			if err != nil {
				return err
			}
			data.Closing = closing
		}
	}
	return nil
}
