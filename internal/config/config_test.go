package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.TimezoneLabel != "IST (UTC+5:30)" {
		t.Errorf("unexpected timezone label %q", cfg.TimezoneLabel)
	}
	if cfg.EmailProvider != "stub" {
		t.Errorf("expected stub email provider by default, got %s", cfg.EmailProvider)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://codecafe.dev, https://www.codecafe.dev")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.IsDevelopment() {
		t.Error("production env should not report development")
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[1] != "https://www.codecafe.dev" {
		t.Errorf("origins not trimmed: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Errorf("expected provider lowercased, got %s", cfg.EmailProvider)
	}
}
