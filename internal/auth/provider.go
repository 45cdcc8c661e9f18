package auth

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
)

// State is what the router sees of authentication
type State struct {
	Loading         bool
	IsAuthenticated bool
}

// Provider derives the auth State of a request.
// Until the agent store has been loaded every request is Loading.
type Provider struct {
	usersFile string
	sessions  *Sessions

	mu    sync.RWMutex
	store *UserStore
	ready atomic.Bool
	done  chan struct{}
	err   error
}

// NewProvider creates a provider that reads agents from usersFile
func NewProvider(usersFile string, sessions *Sessions) *Provider {
	return &Provider{
		usersFile: usersFile,
		sessions:  sessions,
		done:      make(chan struct{}),
	}
}

// Start loads the agent store in the background.
// Wait blocks until that first load has finished. A store installed by
// SetStore or Reload in the meantime is kept.
func (p *Provider) Start(ctx context.Context) {
	go func() {
		defer close(p.done)

		store, err := NewUserStore(p.usersFile)
		if ctx.Err() != nil {
			return
		}
		p.mu.Lock()
		if p.store == nil {
			p.store, p.err = store, err
		}
		p.mu.Unlock()
		p.ready.Store(true)
	}()
}

// Wait blocks until the first load finished or ctx is done and returns the load error
func (p *Provider) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		p.mu.RLock()
		defer p.mu.RUnlock()
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetStore installs an already loaded store and marks the provider ready
func (p *Provider) SetStore(store *UserStore) {
	p.mu.Lock()
	p.store, p.err = store, nil
	p.mu.Unlock()
	p.ready.Store(true)
}

// Reload re-reads the agent file; on failure the previous agents stay active
func (p *Provider) Reload() error {
	store := p.Store()
	if store == nil {
		next, err := NewUserStore(p.usersFile)
		if err != nil {
			return err
		}
		p.SetStore(next)
		return nil
	}
	return store.LoadFromFile(p.usersFile)
}

// Store returns the agent store, nil while loading or after a failed load
func (p *Provider) Store() *UserStore {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store
}

// Sessions returns the session issuer
func (p *Provider) Sessions() *Sessions {
	return p.sessions
}

// Ready reports whether the first load has finished
func (p *Provider) Ready() bool {
	return p.ready.Load()
}

// StateOf returns the auth state and, when authenticated, the agent
func (p *Provider) StateOf(r *http.Request) (State, *User) {
	if !p.Ready() {
		return State{Loading: true}, nil
	}

	store := p.Store()
	if store == nil {
		return State{}, nil
	}

	claims, err := p.sessions.FromRequest(r)
	if err != nil {
		return State{}, nil
	}

	// Agents removed or disabled since sign-in lose access immediately
	user, ok := store.Lookup(claims.Subject)
	if !ok {
		return State{}, nil
	}
	return State{IsAuthenticated: true}, user
}
