package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	return &Config{
		TargetURL:           "https://example.invalid/app",
		WindowTitle:         "Test Shell",
		Width:               800,
		Height:              600,
		SecurityPolicy:      PolicyStrict,
		ProbeTimeoutSeconds: 5,
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate failed for valid config: %v", err)
	}
}

func TestValidateRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"EmptyTargetURL", func(c *Config) { c.TargetURL = "" }, "target_url"},
		{"RelativeTargetURL", func(c *Config) { c.TargetURL = "/just/a/path" }, "target_url"},
		{"MissingHost", func(c *Config) { c.TargetURL = "https://" }, "target_url"},
		{"InsecureScheme", func(c *Config) { c.TargetURL = "http://example.invalid/app" }, "target_url"},
		{"UnknownPolicy", func(c *Config) { c.SecurityPolicy = "permissive" }, "security_policy"},
		{"ZeroWidth", func(c *Config) { c.Width = 0 }, "window_size"},
		{"NegativeHeight", func(c *Config) { c.Height = -1 }, "window_size"},
		{"ZeroProbeTimeout", func(c *Config) { c.ProbeTimeoutSeconds = 0 }, "probe_timeout_seconds"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}

			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Expected *ConfigError, got %T: %v", err, err)
			}
			if cerr.Field != tc.field {
				t.Errorf("Expected error on field %q, got %q (%v)", tc.field, cerr.Field, err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // no config file present

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetURL == "" {
		t.Error("Expected compiled-in default target URL")
	}
	if cfg.SecurityPolicy != PolicyStrict {
		t.Errorf("Expected default policy %q, got %q", PolicyStrict, cfg.SecurityPolicy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".composite-shell")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	content := "target_url = \"https://selector.example.invalid\"\nwindow_width = 1280\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetURL != "https://selector.example.invalid" {
		t.Errorf("Expected target URL from config file, got %q", cfg.TargetURL)
	}
	if cfg.Width != 1280 {
		t.Errorf("Expected width 1280 from config file, got %d", cfg.Width)
	}
	// Fields absent from the file keep their defaults
	if cfg.Height != 768 {
		t.Errorf("Expected default height 768, got %d", cfg.Height)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CSHELL_TARGET_URL", "https://override.example.invalid")
	t.Setenv("CSHELL_WINDOW_TITLE", "Override Title")
	t.Setenv("CSHELL_WINDOW_WIDTH", "640")
	t.Setenv("CSHELL_WINDOW_HEIGHT", "480")
	t.Setenv("CSHELL_LOG_DIR", "/tmp/shell-logs")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetURL != "https://override.example.invalid" {
		t.Errorf("Expected env override for target URL, got %q", cfg.TargetURL)
	}
	if cfg.WindowTitle != "Override Title" {
		t.Errorf("Expected env override for title, got %q", cfg.WindowTitle)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("Expected env override for size, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.LogDir != "/tmp/shell-logs" {
		t.Errorf("Expected env override for log dir, got %q", cfg.LogDir)
	}
}
