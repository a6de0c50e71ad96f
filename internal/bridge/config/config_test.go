package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nbshadow.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Scheme != "nb" {
		t.Errorf("Scheme = %q, want nb", cfg.Scheme)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
scheme = "jp"
log_level = "debug"
navigation_methods = ["textDocument/documentHighlight"]
preview_methods = ["textDocument/documentSymbol"]
policy_script = "/etc/nbshadow/policy.lua"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scheme != "jp" {
		t.Errorf("Scheme = %q", cfg.Scheme)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if len(cfg.NavigationMethods) != 1 || cfg.NavigationMethods[0] != "textDocument/documentHighlight" {
		t.Errorf("NavigationMethods = %v", cfg.NavigationMethods)
	}
	if len(cfg.PreviewMethods) != 1 || cfg.PreviewMethods[0] != "textDocument/documentSymbol" {
		t.Errorf("PreviewMethods = %v", cfg.PreviewMethods)
	}
	if cfg.PolicyScript != "/etc/nbshadow/policy.lua" {
		t.Errorf("PolicyScript = %q", cfg.PolicyScript)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `log_level = "warn"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scheme != "nb" {
		t.Errorf("Scheme = %q, want default", cfg.Scheme)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, `scheme = [`)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"empty scheme", func(c *Config) { c.Scheme = "" }, false},
		{"scheme with colon", func(c *Config) { c.Scheme = "nb:" }, false},
		{"scheme with slash", func(c *Config) { c.Scheme = "n/b" }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, false},
		{"warning alias", func(c *Config) { c.LogLevel = "warning" }, true},
		{"blank method", func(c *Config) { c.NavigationMethods = []string{" "} }, false},
		{"blank preview method", func(c *Config) { c.PreviewMethods = []string{""} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
