// Package config loads the event-manager YAML configuration.
//
// The only option the core needs is serviceBaseUrl, the root of the Remote
// Event Service. The remaining sections configure the ambient pieces: log
// level, the development server and notification sinks. A missing config
// file is not an error; defaults are used instead.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultServiceBaseURL matches the port the development server listens on.
	DefaultServiceBaseURL = "http://localhost:3001"

	// EnvServiceURL overrides serviceBaseUrl when set.
	EnvServiceURL = "EVENT_SERVICE_URL"
)

// Config is the top-level configuration.
type Config struct {
	ServiceBaseURL string              `yaml:"serviceBaseUrl"`
	Timeout        time.Duration       `yaml:"timeout"`
	Logging        LoggingConfig       `yaml:"logging"`
	Server         ServerConfig        `yaml:"server"`
	Notifications  NotificationsConfig `yaml:"notifications"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig configures the development Remote Event Service.
type ServerConfig struct {
	Listen   string `yaml:"listen"`
	DataFile string `yaml:"data_file"`
}

// NotificationsConfig selects where submit/delete notifications go.
type NotificationsConfig struct {
	// Console prints toasts to stderr. Defaults to true.
	Console *bool `yaml:"console"`
	// Twitter announces newly created events. Credentials come from
	// TWITTER_* environment variables.
	Twitter bool `yaml:"twitter"`
	// Telegram posts newly created events to a chat. Credentials come from
	// TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.
	Telegram bool `yaml:"telegram"`
}

// DefaultPath returns ~/.config/event-manager/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "event-manager", "config.yaml")
}

// Default returns an in-memory default configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// ConsoleEnabled reports whether console toasts are on.
func (n NotificationsConfig) ConsoleEnabled() bool {
	return n.Console == nil || *n.Console
}

// defaults applies sane defaults to zero-valued fields.
func (c *Config) defaults() {
	if c.ServiceBaseURL == "" {
		c.ServiceBaseURL = DefaultServiceBaseURL
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1:3001"
	}
	if c.Server.DataFile == "" {
		c.Server.DataFile = "db.json"
	}
}

// expandEnv resolves ${VAR} references and the EVENT_SERVICE_URL override.
func (c *Config) expandEnv() {
	c.ServiceBaseURL = os.ExpandEnv(c.ServiceBaseURL)
	if v := os.Getenv(EnvServiceURL); v != "" {
		c.ServiceBaseURL = v
	}
	c.Server.DataFile = os.ExpandEnv(c.Server.DataFile)
}

// Validate checks required fields and value constraints.
func (c *Config) Validate() error {
	if err := ValidateServiceURL(c.ServiceBaseURL); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// ValidateServiceURL checks that raw is an absolute http(s) URL.
func ValidateServiceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("serviceBaseUrl %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("serviceBaseUrl must be an http or https URL, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("serviceBaseUrl %q has no host", raw)
	}
	return nil
}

// Load reads a YAML config file, applies defaults, expands env vars, and validates.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: fall through to defaults
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.defaults()
	cfg.expandEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration as YAML with 0600 permissions, creating the
// parent directory when needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
