package config

import (
	"testing"

	"github.com/spf13/viper"
)

func loadFromEnv() AppConfig {
	v := viper.New()
	Bind(v)
	return FromViper(v)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := loadFromEnv()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.BackendURL != "http://127.0.0.1:8080" {
		t.Fatalf("expected backend to default to local api, got %q", cfg.BackendURL)
	}
	if !cfg.EmailTestMode {
		t.Fatal("email test mode should default to true")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors origin, got %v", cfg.CORSOrigins)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Fatalf("expected no trusted proxies by default, got %v", cfg.TrustedProxies)
	}
	if cfg.WaitlistRatePerMinute != 10 {
		t.Fatalf("expected default rate 10, got %d", cfg.WaitlistRatePerMinute)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "  https://api.risegum.in/  ")
	t.Setenv("ADMIN_API_TOKEN", " token ")
	t.Setenv("EMAIL_TEST_MODE", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ORIGINS", "https://risegum.in/, https://www.risegum.in ,")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, 172.16.0.0/12 ")

	cfg := loadFromEnv()

	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected listen addr derived from port, got %q", cfg.ListenAddr)
	}
	if cfg.BackendURL != "https://api.risegum.in" {
		t.Fatalf("expected trimmed backend url, got %q", cfg.BackendURL)
	}
	if cfg.AdminAPIToken != "token" {
		t.Fatalf("expected trimmed token, got %q", cfg.AdminAPIToken)
	}
	if cfg.EmailTestMode {
		t.Fatal("expected email test mode to be disabled")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://risegum.in" || cfg.CORSOrigins[1] != "https://www.risegum.in" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.1" || cfg.TrustedProxies[1] != "172.16.0.0/12" {
		t.Fatalf("unexpected trusted proxies %v", cfg.TrustedProxies)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected lower-cased log level, got %q", cfg.LogLevel)
	}
}
