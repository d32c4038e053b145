package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// SecurityPolicy governs what the hosted page may do and what the host may
// do to the page. Only the strict variant is defined: no script injection
// from the host, no native-bridge exposure to the page, and no insecure
// transport for the target.
type SecurityPolicy string

const PolicyStrict SecurityPolicy = "strict"

// Config describes one shell build: which URL to host, how the window
// looks, and which security policy the rendering surface is configured
// with. It is constructed once at startup and read-only thereafter.
type Config struct {
	TargetURL      string         `toml:"target_url"`
	WindowTitle    string         `toml:"window_title"`
	Width          int            `toml:"window_width"`
	Height         int            `toml:"window_height"`
	SecurityPolicy SecurityPolicy `toml:"security_policy"`

	// ProbeTimeoutSeconds bounds the reachability probe used to determine
	// load outcomes, not the page load itself (which has no timeout).
	ProbeTimeoutSeconds int `toml:"probe_timeout_seconds"`

	// LogDir overrides where log files and stack dumps are written. Empty
	// means the platform default under the user's home directory.
	LogDir string `toml:"log_dir"`
}

// ConfigError reports an invalid or missing configuration field. It is a
// fatal launch condition: no window may be created from a Config that does
// not validate.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

func Load() (*Config, error) {
	cfg := &Config{
		TargetURL:           "https://composite-selector.streamlit.app",
		WindowTitle:         "Composite Selector",
		Width:               1024,
		Height:              768,
		SecurityPolicy:      PolicyStrict,
		ProbeTimeoutSeconds: 15,
	}

	home, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(home, ".composite-shell", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			if _, err := toml.DecodeFile(configPath, cfg); err != nil {
				return nil, err
			}
		}
	}

	// Apply environment variable overrides
	if v := os.Getenv("CSHELL_TARGET_URL"); v != "" {
		cfg.TargetURL = v
	}
	if v := os.Getenv("CSHELL_WINDOW_TITLE"); v != "" {
		cfg.WindowTitle = v
	}
	if v := os.Getenv("CSHELL_WINDOW_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Width = n
		}
	}
	if v := os.Getenv("CSHELL_WINDOW_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Height = n
		}
	}
	if v := os.Getenv("CSHELL_SECURITY_POLICY"); v != "" {
		cfg.SecurityPolicy = SecurityPolicy(v)
	}
	if v := os.Getenv("CSHELL_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}

	return cfg, nil
}

// Validate checks the launch-boundary invariants. A non-nil result is
// always a *ConfigError naming the offending field.
func (c *Config) Validate() error {
	if c.TargetURL == "" {
		return &ConfigError{Field: "target_url", Reason: "must not be empty"}
	}
	u, err := url.Parse(c.TargetURL)
	if err != nil {
		return &ConfigError{Field: "target_url", Reason: fmt.Sprintf("not a valid URL: %v", err)}
	}
	if !u.IsAbs() || u.Host == "" {
		return &ConfigError{Field: "target_url", Reason: "must be an absolute URL with a host"}
	}
	if c.SecurityPolicy != PolicyStrict {
		return &ConfigError{Field: "security_policy", Reason: fmt.Sprintf("unknown policy %q (only %q is supported)", c.SecurityPolicy, PolicyStrict)}
	}
	// The hosted content is fully external; the strict policy refuses to
	// issue the navigation over an insecure transport.
	if u.Scheme != "https" {
		return &ConfigError{Field: "target_url", Reason: fmt.Sprintf("scheme %q not allowed under the %q policy (https required)", u.Scheme, PolicyStrict)}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigError{Field: "window_size", Reason: fmt.Sprintf("dimensions must be positive, got %dx%d", c.Width, c.Height)}
	}
	if c.ProbeTimeoutSeconds <= 0 {
		return &ConfigError{Field: "probe_timeout_seconds", Reason: "must be positive"}
	}
	return nil
}

func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}
