// Package config loads bridge configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Errors returned by configuration loading.
var (
	ErrInvalidScheme   = errors.New("scheme must be non-empty and contain no URI syntax")
	ErrInvalidLogLevel = errors.New("unknown log level")
	ErrInvalidMethod   = errors.New("method names must be non-empty")
)

// Config holds the bridge's tunable settings.
type Config struct {
	// Scheme is the synthetic identifier scheme token. Kept short so
	// picker lines stay readable next to line numbers.
	Scheme string `toml:"scheme"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// NavigationMethods lists additional protocol methods whose results
	// should target the facade's native identity.
	NavigationMethods []string `toml:"navigation_methods"`

	// PreviewMethods lists protocol methods pinned to synthetic identity,
	// overriding the built-in navigation table.
	PreviewMethods []string `toml:"preview_methods"`

	// PolicyScript is an optional Lua script path consulted for
	// per-method target decisions before the built-in table.
	PolicyScript string `toml:"policy_script"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Scheme:   "nb",
		LogLevel: "info",
	}
}

// Load reads and validates a TOML config file. Settings absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Scheme == "" || strings.ContainsAny(c.Scheme, ":/") {
		return fmt.Errorf("%w: %q", ErrInvalidScheme, c.Scheme)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	for _, m := range append(append([]string(nil), c.NavigationMethods...), c.PreviewMethods...) {
		if strings.TrimSpace(m) == "" {
			return ErrInvalidMethod
		}
	}

	return nil
}
