// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultTransport      = "stdio"
	DefaultHTTPAddr       = ":8080"
	DefaultMetricsPort    = 9090
	DefaultTimeoutSeconds = 60
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for omnibridge.
type Config struct {
	// OmniFocus automation settings
	TimeoutSeconds int `toml:"timeout_seconds"`

	// Server settings
	Transport string `toml:"transport"` // "stdio" or "http"
	HTTPAddr  string `toml:"http_addr"`
	Yolo      bool   `toml:"yolo"` // enable write tools

	// Metrics settings
	MetricsEnabled bool `toml:"metrics_enabled"`
	MetricsPort    int  `toml:"metrics_port"`

	// Logging settings
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"` // "text" or "json"

	// Audit log destination; empty disables audit logging
	AuditLogPath string `toml:"audit_log_path"`
}

// Timeout returns the osascript timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.config/omnibridge/config.toml or OS-specific dir)
// 3. Environment variables (OMNIBRIDGE_*)
//
// CLI flags are bound by the commands themselves and override all of these.
func Load() (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path := findUserConfigFile(); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TimeoutSeconds = DefaultTimeoutSeconds
	cfg.Transport = DefaultTransport
	cfg.HTTPAddr = DefaultHTTPAddr
	cfg.MetricsPort = DefaultMetricsPort
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("OMNIBRIDGE_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = i
		}
	}
	if v := os.Getenv("OMNIBRIDGE_TRANSPORT"); v != "" {
		cfg.Transport = v
	}
	if v := os.Getenv("OMNIBRIDGE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("OMNIBRIDGE_YOLO"); v != "" {
		cfg.Yolo = boolFromString(v)
	}
	if v := os.Getenv("OMNIBRIDGE_METRICS_ENABLED"); v != "" {
		cfg.MetricsEnabled = boolFromString(v)
	}
	if v := os.Getenv("OMNIBRIDGE_METRICS_PORT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.MetricsPort = i
		}
	}
	if v := os.Getenv("OMNIBRIDGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("OMNIBRIDGE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("OMNIBRIDGE_AUDIT_LOG"); v != "" {
		cfg.AuditLogPath = expandPath(v)
	}
}

// validate rejects values the rest of the program cannot work with.
func validate(cfg *Config) error {
	if cfg.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", cfg.TimeoutSeconds)
	}
	switch cfg.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown transport %q (expected stdio or http)", cfg.Transport)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (expected text or json)", cfg.LogFormat)
	}
	if cfg.MetricsPort < 1 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("metrics_port out of range: %d", cfg.MetricsPort)
	}
	return nil
}

// findUserConfigFile looks for a user-level config file. It checks
// ~/.config/omnibridge/config.toml first, then falls back to the
// OS-specific config directory.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, ".config", "omnibridge", "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		path := filepath.Join(cfgDir, "omnibridge", "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// expandPath expands a leading ~ and environment variables in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return home
	}
	if strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}
