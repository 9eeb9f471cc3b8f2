package config_test

import (
	"testing"
	"time"

	"github.com/iho/finbook/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StorageBackend != "redis" {
		t.Fatalf("expected default storage backend redis, got %s", cfg.StorageBackend)
	}

	if cfg.RedisURL == "" || cfg.DatabaseURL == "" {
		t.Fatalf("expected default connection URLs to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.JWTSecret != "" || cfg.AuthEnabled {
		t.Fatalf("expected auth to be disabled by default")
	}

	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected rate limiting disabled by default, got %v", cfg.RateLimitRPS)
	}

	if cfg.RateLimitCleanupInterval != time.Hour {
		t.Fatalf("expected 1h cleanup interval, got %v", cfg.RateLimitCleanupInterval)
	}

	if cfg.SaveMaxElapsedTime != 10*time.Second || cfg.SaveDrainTimeout != 5*time.Second {
		t.Fatalf("unexpected persistence defaults: %v / %v", cfg.SaveMaxElapsedTime, cfg.SaveDrainTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SAVE_MAX_ELAPSED_TIME", "30s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StorageBackend != "postgres" {
		t.Fatalf("expected storage backend override, got %s", cfg.StorageBackend)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.SaveMaxElapsedTime != 30*time.Second {
		t.Fatalf("expected save retry window override, got %s", cfg.SaveMaxElapsedTime)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
