package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestProviderLoadingUntilStarted(t *testing.T) {
	sessions := NewSessions(SessionConfig{Secret: "s"})
	p := NewProvider(writeUsersFile(t, testUsers(t)), sessions)

	state, _ := p.StateOf(httptest.NewRequest(http.MethodGet, "/", nil))
	if !state.Loading {
		t.Fatalf("state before Start = %+v, want Loading", state)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Start(ctx)
	if err := p.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	state, _ = p.StateOf(httptest.NewRequest(http.MethodGet, "/", nil))
	if state.Loading || state.IsAuthenticated {
		t.Errorf("anonymous state = %+v", state)
	}
}

func TestProviderAuthenticatedRequest(t *testing.T) {
	sessions := NewSessions(SessionConfig{Secret: "s"})
	store := &UserStore{}
	if err := store.Load(testUsers(t)); err != nil {
		t.Fatal(err)
	}
	p := NewProvider("", sessions)
	p.SetStore(store)

	withSession := func(email string) *http.Request {
		rec := httptest.NewRecorder()
		if err := sessions.SetCookie(rec, &User{Email: email}); err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(rec.Result().Cookies()[0])
		return req
	}

	state, user := p.StateOf(withSession("alex@example.com"))
	if !state.IsAuthenticated || state.Loading || user == nil || user.DisplayName != "Alex" {
		t.Errorf("state = %+v, user = %+v", state, user)
	}

	// A valid token for a disabled agent is not enough
	state, _ = p.StateOf(withSession("off@example.com"))
	if state.IsAuthenticated {
		t.Error("disabled agent should not be authenticated")
	}
}

func TestProviderFailedLoad(t *testing.T) {
	p := NewProvider("/nonexistent/users.json", NewSessions(SessionConfig{Secret: "s"}))
	ctx := context.Background()
	p.Start(ctx)
	if err := p.Wait(ctx); err == nil {
		t.Fatal("expected load error")
	}

	state, _ := p.StateOf(httptest.NewRequest(http.MethodGet, "/", nil))
	if state.Loading || state.IsAuthenticated {
		t.Errorf("state after failed load = %+v, want unauthenticated", state)
	}
}

func TestProviderStartKeepsInstalledStore(t *testing.T) {
	p := NewProvider(writeUsersFile(t, testUsers(t)), NewSessions(SessionConfig{Secret: "s"}))

	cfg := testUsers(t)
	cfg.Users[1].Enabled = true
	installed := &UserStore{}
	if err := installed.Load(cfg); err != nil {
		t.Fatal(err)
	}
	p.SetStore(installed)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Start(ctx)
	if err := p.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	if p.Store() != installed {
		t.Fatal("background load replaced the installed store")
	}
	if got := p.Store().GetUserCount(); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestProviderReload(t *testing.T) {
	path := writeUsersFile(t, testUsers(t))
	p := NewProvider(path, NewSessions(SessionConfig{Secret: "s"}))
	if err := p.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := p.Store().GetUserCount(); got != 1 {
		t.Fatalf("count = %d", got)
	}

	cfg := testUsers(t)
	cfg.Users[1].Enabled = true
	data := writeUsersFile(t, cfg)
	raw, err := os.ReadFile(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := p.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := p.Store().GetUserCount(); got != 2 {
		t.Errorf("count after reload = %d, want 2", got)
	}

	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := p.Reload(); err == nil {
		t.Error("expected error for malformed file")
	}
	if got := p.Store().GetUserCount(); got != 2 {
		t.Errorf("failed reload changed count to %d", got)
	}
}
