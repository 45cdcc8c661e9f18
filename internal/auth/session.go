package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid is returned for expired, tampered or incomplete session tokens
var ErrTokenInvalid = errors.New("invalid session token")

// DefaultSessionTTL applies when SessionConfig.TTL is zero
const DefaultSessionTTL = 12 * time.Hour

// SessionClaims are carried in the signed session cookie
type SessionClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// SessionConfig controls how session cookies are issued and read
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// Sessions issues and verifies HS256 session tokens
type Sessions struct {
	cfg SessionConfig
	now func() time.Time
}

// NewSessions creates a session issuer
func NewSessions(cfg SessionConfig) *Sessions {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "supportdesk_session"
	}
	return &Sessions{cfg: cfg, now: time.Now}
}

// Issue signs a new token for user
func (s *Sessions) Issue(user *User) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.cfg.TTL)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   normalizeEmail(user.Email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
		Name: user.DisplayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, expires, nil
}

// Parse validates a token's signature, expiry and subject
func (s *Sessions) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return claims, nil
}

// SetCookie writes a session cookie for user
func (s *Sessions) SetCookie(w http.ResponseWriter, user *User) error {
	token, expires, err := s.Issue(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest returns the claims of the request's session cookie
func (s *Sessions) FromRequest(r *http.Request) (*SessionClaims, error) {
	cookie, err := r.Cookie(s.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrTokenInvalid
	}
	return s.Parse(cookie.Value)
}
