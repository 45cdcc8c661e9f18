package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"supportdesk/internal/theme"
)

// DefaultFiles are tried in order when no config path is given
var DefaultFiles = []string{"config.json", "config.yaml", "config.yml"}

// Config holds all service configuration values.
type Config struct {
	Listen         string `json:"listen" yaml:"listen"`
	MetricsListen  string `json:"metrics_listen" yaml:"metrics_listen"`
	BrandColor     string `json:"brand_color" yaml:"brand_color"`
	UsersFile      string `json:"users_file" yaml:"users_file"`
	SessionSecret  string `json:"session_secret" yaml:"session_secret"`
	SessionTTLMin  int    `json:"session_ttl_min" yaml:"session_ttl_min"`
	CookieName     string `json:"cookie_name" yaml:"cookie_name"`
	LoginRateLimit int    `json:"login_rate_limit_rpm" yaml:"login_rate_limit_rpm"`
	ShutdownSec    int    `json:"shutdown_sec" yaml:"shutdown_sec"`

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-" yaml:"-"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Listen:         ":4000",
		MetricsListen:  ":9090",
		BrandColor:     theme.DefaultBrandColor,
		UsersFile:      "users.json",
		SessionTTLMin:  12 * 60,
		CookieName:     "supportdesk_session",
		LoginRateLimit: 30,
		ShutdownSec:    10,
	}
}

// Load reads the first config file found, then applies environment overrides.
// A missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	cfg := Defaults()

	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			if err := cfg.LoadFile(name); err != nil {
				return nil, err
			}
			break
		}
	}

	cfg.Env = LoadEnv()
	cfg.applyEnv(cfg.Env)
	return cfg, nil
}

// LoadFile merges a JSON or YAML file into cfg, chosen by extension
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// SessionTTL returns the session lifetime
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

// ShutdownTimeout bounds graceful shutdown
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownSec) * time.Second
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Listen == "" {
		errs = append(errs, "listen address is required")
	}
	if _, ok := theme.HexToRGB(c.BrandColor); !ok {
		errs = append(errs, fmt.Sprintf("brand_color must be a 6-digit hex color, got %q", c.BrandColor))
	}
	if c.UsersFile == "" {
		errs = append(errs, "users_file is required")
	}
	if c.SessionTTLMin <= 0 {
		errs = append(errs, "session_ttl_min must be positive")
	}
	if c.LoginRateLimit < 0 {
		errs = append(errs, "login_rate_limit_rpm must not be negative")
	}
	if c.ShutdownSec <= 0 {
		errs = append(errs, "shutdown_sec must be positive")
	}
	if c.Env != nil && c.Env.IsProduction() && len(c.SessionSecret) < 32 {
		errs = append(errs, "session_secret of at least 32 characters is required in production")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}
