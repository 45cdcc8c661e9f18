package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for unknown agents, disabled agents and bad passwords
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrIPNotAllowed is returned when the client address is outside the whitelist
	ErrIPNotAllowed = errors.New("address not allowed")
)

// User is a support agent who can sign in to the dashboard
type User struct {
	Email        string `json:"email"`
	DisplayName  string `json:"display_name,omitempty"`
	PasswordHash string `json:"password_hash"`
	Enabled      bool   `json:"enabled"`
}

// UsersConfig is the on-disk layout of users.json
type UsersConfig struct {
	Users       []User   `json:"users"`
	IPWhitelist []string `json:"ip_whitelist"` // CIDR notation, empty = allow all
}

// UserStore holds the enabled agents and the dashboard IP whitelist
type UserStore struct {
	mu          sync.RWMutex
	users       map[string]*User
	ipWhitelist []*net.IPNet
}

// NewUserStore creates a user store from a config file
func NewUserStore(configPath string) (*UserStore, error) {
	store := &UserStore{
		users:       make(map[string]*User),
		ipWhitelist: make([]*net.IPNet, 0),
	}

	if err := store.LoadFromFile(configPath); err != nil {
		return nil, err
	}

	return store, nil
}

// LoadFromFile replaces the store contents with the agents in path
func (s *UserStore) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read users file: %w", err)
	}

	var cfg UsersConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse users file: %w", err)
	}

	return s.Load(cfg)
}

// Load replaces the store contents with cfg
func (s *UserStore) Load(cfg UsersConfig) error {
	whitelist := make([]*net.IPNet, 0, len(cfg.IPWhitelist))
	for _, cidr := range cfg.IPWhitelist {
		// Single addresses without a prefix length
		if !strings.Contains(cidr, "/") {
			if strings.Contains(cidr, ":") {
				cidr = cidr + "/128"
			} else {
				cidr = cidr + "/32"
			}
		}
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return fmt.Errorf("invalid IP whitelist entry '%s': %w", cidr, err)
		}
		whitelist = append(whitelist, ipNet)
	}

	users := make(map[string]*User, len(cfg.Users))
	for i := range cfg.Users {
		user := cfg.Users[i]
		if user.Enabled {
			users[normalizeEmail(user.Email)] = &user
		}
	}

	s.mu.Lock()
	s.users = users
	s.ipWhitelist = whitelist
	s.mu.Unlock()

	return nil
}

// ValidateCredentials checks an email and password against the store
func (s *UserStore) ValidateCredentials(email, password string) (*User, error) {
	s.mu.RLock()
	user, exists := s.users[normalizeEmail(email)]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Lookup returns the enabled agent with the given email
func (s *UserStore) Lookup(email string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[normalizeEmail(email)]
	return user, ok
}

// CheckIPAllowed reports whether an address may reach the dashboard.
// An empty whitelist allows every address.
func (s *UserStore) CheckIPAllowed(ipStr string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.ipWhitelist) == 0 {
		return true
	}

	host := ipStr
	if strings.Contains(ipStr, ":") {
		var err error
		host, _, err = net.SplitHostPort(ipStr)
		if err != nil {
			// IPv6 without port
			host = ipStr
		}
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}

	for _, ipNet := range s.ipWhitelist {
		if ipNet.Contains(ip) {
			return true
		}
	}

	return false
}

// GetUserCount returns the number of enabled agents
func (s *UserStore) GetUserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// HashPassword generates a bcrypt hash for users.json
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
