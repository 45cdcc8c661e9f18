package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
)

// Environment represents the application environment
type Environment string

const (
	// Development environment - localhost, debug enabled
	Development Environment = "development"
	// Production environment - real domain, secure cookies
	Production Environment = "production"
)

// EnvConfig holds environment-specific configuration
type EnvConfig struct {
	// Environment name (development, production)
	Env Environment

	BaseURL  string
	Debug    bool
	LogLevel string

	// Cookies are marked Secure outside development
	SecureCookies bool
}

// LoadEnv loads environment configuration from environment variables
func LoadEnv() *EnvConfig {
	env := getEnvOrDefault("APP_ENV", "development")

	cfg := &EnvConfig{
		Env:      Environment(strings.ToLower(env)),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	switch cfg.Env {
	case Production:
		cfg.BaseURL = getEnvOrDefault("BASE_URL", "https://app.example.com")
		cfg.Debug = getEnvOrDefault("DEBUG", "false") == "true"
		cfg.SecureCookies = true
	default:
		cfg.Env = Development // Normalize unknown envs to development
		cfg.BaseURL = getEnvOrDefault("BASE_URL", "http://localhost:4000")
		cfg.Debug = getEnvOrDefault("DEBUG", "true") == "true"
		cfg.SecureCookies = getEnvOrDefault("SECURE_COOKIES", "false") == "true"
		if cfg.LogLevel == "info" {
			cfg.LogLevel = "debug" // Dev default
		}
	}

	return cfg
}

// applyEnv overrides file values with any variables that are set
func (c *Config) applyEnv(env *EnvConfig) {
	c.Listen = getEnvOrDefault("LISTEN", c.Listen)
	c.MetricsListen = getEnvOrDefault("METRICS_LISTEN", c.MetricsListen)
	c.BrandColor = getEnvOrDefault("BRAND_COLOR", c.BrandColor)
	c.UsersFile = getEnvOrDefault("USERS_FILE", c.UsersFile)
	c.SessionSecret = getEnvOrDefault("SESSION_SECRET", c.SessionSecret)
	c.CookieName = getEnvOrDefault("COOKIE_NAME", c.CookieName)
	c.SessionTTLMin = parseIntOrDefault(os.Getenv("SESSION_TTL_MIN"), c.SessionTTLMin)
	c.LoginRateLimit = parseIntOrDefault(os.Getenv("LOGIN_RATE_LIMIT_RPM"), c.LoginRateLimit)
	c.ShutdownSec = parseIntOrDefault(os.Getenv("SHUTDOWN_SEC"), c.ShutdownSec)

	// Development gets a throwaway secret so sessions work out of the box
	if c.SessionSecret == "" && env.IsDevelopment() {
		c.SessionSecret = randomSecret()
	}
}

// IsDevelopment returns true if running in development mode
func (e *EnvConfig) IsDevelopment() bool {
	return e.Env == Development
}

// IsProduction returns true if running in production mode
func (e *EnvConfig) IsProduction() bool {
	return e.Env == Production
}

// String returns the environment name
func (e Environment) String() string {
	return string(e)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntOrDefault parses a string as int, returning default on error
func parseIntOrDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return v
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
