package config

import (
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() || cfg.App.IsDev() {
		t.Fatalf("env helpers disagree with %q", cfg.App.Env)
	}

	if cfg.Auth.Issuer != "https://sessions.example.test" {
		t.Fatalf("unexpected auth issuer %q", cfg.Auth.Issuer)
	}

	if cfg.Catalog.PageSize != 5 {
		t.Fatalf("expected default page size 5, got %d", cfg.Catalog.PageSize)
	}
	if cfg.Catalog.LoadMoreDelay != 0 {
		t.Fatalf("expected zero load-more delay by default, got %v", cfg.Catalog.LoadMoreDelay)
	}

	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled when URL is empty")
	}

	if got := cfg.Eventing.IdempotencyTTL; got != 24*time.Hour {
		t.Fatalf("expected idempotency TTL 24h, got %v", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MOSSX_APP_ENV", "production")
	t.Setenv("MOSSX_AUTH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing auth secret to return an error")
	}
}

func TestLoad_RejectsBadPageSize(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("MOSSX_CATALOG_PAGE_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected zero page size to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv("MOSSX_APP_ENV", "production")
	t.Setenv("MOSSX_APP_PORT", "8081")
	t.Setenv("MOSSX_AUTH_SECRET", "secret")
	t.Setenv("MOSSX_AUTH_ISSUER", "https://sessions.example.test")
	t.Setenv("MOSSX_REDIS_URL", "")
}
