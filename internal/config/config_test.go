package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("SETTING_CACHE_TTL_SECONDS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected default token TTL 480, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.SettingCacheTTLSeconds != 300 {
		t.Fatalf("expected default cache TTL 300, got %d", cfg.SettingCacheTTLSeconds)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("expected listen address :8080, got %q", cfg.Address())
	}
}

func TestLoadRejectsBadTTLs(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "zero")
	t.Setenv("SETTING_CACHE_TTL_SECONDS", "-5")

	cfg := Load()
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected fallback token TTL 480, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.SettingCacheTTLSeconds != 300 {
		t.Fatalf("expected fallback cache TTL 300, got %d", cfg.SettingCacheTTLSeconds)
	}
}

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
}
