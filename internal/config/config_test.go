package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadFailsWithoutJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_TOKEN_TTL_SECONDS", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.TokenTTLSeconds != 3600 {
		t.Fatalf("expected default TTL 3600, got %d", cfg.Auth.TokenTTLSeconds)
	}
	if cfg.Auth.TokenTTL() != time.Hour {
		t.Fatalf("expected 1h TTL, got %v", cfg.Auth.TokenTTL())
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.App.Port)
	}
	if cfg.Storage.MaxFileSizeByte != 5*1024*1024 {
		t.Fatalf("expected 5MiB upload limit, got %d", cfg.Storage.MaxFileSizeByte)
	}
}

func TestTokenTTLOverride(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_TOKEN_TTL_SECONDS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.TokenTTL() != 2*time.Minute {
		t.Fatalf("expected 2m TTL, got %v", cfg.Auth.TokenTTL())
	}
}
