package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("unexpected default timeout %v", cfg.Timeout())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WIDGETCHAT_SERVER_URL", "https://chat.example.com")
	t.Setenv("WIDGETCHAT_USER_ID", "alice")
	t.Setenv("WIDGETCHAT_TIMEOUT", "10")
	t.Setenv("WIDGETCHAT_THEME", "dark")
	t.Setenv("WIDGETCHAT_DEBUG", "true")

	cfg := DefaultConfig()
	if cfg.ServerURL != "https://chat.example.com" {
		t.Errorf("server url override not applied: %q", cfg.ServerURL)
	}
	if cfg.UserID != "alice" || cfg.RequestTimeout != 10 || cfg.Theme != "dark" || !cfg.Debug {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server url", func(c *Config) { c.ServerURL = "" }},
		{"non-http server url", func(c *Config) { c.ServerURL = "ftp://example.com" }},
		{"empty user", func(c *Config) { c.UserID = "  " }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"unknown theme", func(c *Config) { c.Theme = "sepia" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				ServerURL:      "http://localhost:8000",
				UserID:         "default_user",
				RequestTimeout: 30,
				Theme:          "auto",
			}
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}
