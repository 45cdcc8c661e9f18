package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"supportdesk/internal/auth"
	"supportdesk/internal/config"
	"supportdesk/internal/theme"
)

type testEnv struct {
	srv      *Server
	provider *auth.Provider
	sessions *auth.Sessions
}

func newTestServer(t *testing.T, ready bool) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(auth.UsersConfig{Users: []auth.User{
		{Email: "alex@example.com", DisplayName: "Alex", PasswordHash: string(hash), Enabled: true},
	}})
	if err != nil {
		t.Fatal(err)
	}
	usersFile := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(usersFile, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.Defaults()
	cfg.UsersFile = usersFile
	cfg.LoginRateLimit = 0
	cfg.ShutdownSec = 1

	sessions := auth.NewSessions(auth.SessionConfig{Secret: "test-secret", CookieName: cfg.CookieName})
	provider := auth.NewProvider(usersFile, sessions)
	if ready {
		if err := provider.Reload(); err != nil {
			t.Fatal(err)
		}
	}

	var sheet theme.Stylesheet
	sheet.Install("#1890ff")

	srv, err := NewServer(cfg, provider, &sheet, "test")
	if err != nil {
		t.Fatal(err)
	}
	srv.logRequests = false
	return &testEnv{srv: srv, provider: provider, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := e.sessions.SetCookie(rec, &auth.User{Email: "alex@example.com"}); err != nil {
		t.Fatal(err)
	}
	return rec.Result().Cookies()[0]
}

func TestLoadingRendersNoRouteContent(t *testing.T) {
	env := newTestServer(t, false)

	for _, path := range []string{"/", "/login", "/conversations/42"} {
		rec := env.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, rec.Code)
		}
		body := rec.Body.String()
		if strings.Contains(body, "<form") || strings.Contains(body, "dashboard") {
			t.Errorf("%s: loading page rendered route content", path)
		}
	}
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	env := newTestServer(t, true)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/conversations/42", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?redirect=/conversations/42" {
		t.Errorf("Location = %q", loc)
	}

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `action="/login"`) {
		t.Errorf("login page: %d", rec.Code)
	}
}

func TestAuthenticatedRoutes(t *testing.T) {
	env := newTestServer(t, true)
	cookie := env.sessionCookie(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := env.do(t, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `class="dashboard"`) {
		t.Fatalf("dashboard: status %d body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	req.AddCookie(cookie)
	rec = env.do(t, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/conversations" {
		t.Errorf("unmatched: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	// Shared routes stay reachable when signed in
	req = httptest.NewRequest(http.MethodGet, "/share?cid=abc", nil)
	req.AddCookie(cookie)
	rec = env.do(t, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "abc") {
		t.Errorf("share: status %d", rec.Code)
	}
}

func postLogin(t *testing.T, env *testEnv, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return env.do(t, req)
}

func TestLoginFlow(t *testing.T) {
	env := newTestServer(t, true)

	rec := postLogin(t, env, url.Values{
		"email":    {"alex@example.com"},
		"password": {"wrong"},
		"redirect": {"/conversations/42"},
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="/conversations/42"`) {
		t.Error("failed login lost the redirect target")
	}

	rec = postLogin(t, env, url.Values{
		"email":    {"alex@example.com"},
		"password": {"hunter2"},
		"redirect": {"/conversations/42"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login: status = %d body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/conversations/42" {
		t.Errorf("Location = %q", loc)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/conversations/42", nil)
	req.AddCookie(cookies[0])
	if rec := env.do(t, req); rec.Code != http.StatusOK {
		t.Errorf("after login: status = %d", rec.Code)
	}

	rec = postLogin(t, env, url.Values{
		"email":    {"alex@example.com"},
		"password": {"hunter2"},
		"redirect": {"https://evil.example"},
	})
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("open redirect: Location = %q", loc)
	}
}

func TestLoginRateLimited(t *testing.T) {
	env := newTestServer(t, true)
	env.srv.limiter = auth.NewRateLimiter(1)

	var last int
	for i := 0; i < 6; i++ {
		last = postLogin(t, env, url.Values{"email": {"x@example.com"}, "password": {"x"}}).Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", last)
	}
}

func TestLogout(t *testing.T) {
	env := newTestServer(t, true)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(env.sessionCookie(t))
	rec := env.do(t, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("logout: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if c := rec.Result().Cookies(); len(c) != 1 || c[0].MaxAge >= 0 {
		t.Errorf("cookie not cleared: %+v", c)
	}
}

func TestHealthAndStylesheet(t *testing.T) {
	env := newTestServer(t, true)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("health = %v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id")
	}

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/dynamic-styles.css", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "--brand-color-darker") {
		t.Errorf("stylesheet: %d %s", rec.Code, rec.Body.String())
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	env := newTestServer(t, true)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
