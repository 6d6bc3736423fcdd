package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "host=localhost user=test password=test dbname=test port=5432 sslmode=disable")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("MAIL_SENDER_ADDRESS", "noreply@buildsystem.ca")
	t.Setenv("POSTMARK_SERVER_TOKEN", "server-token")
	t.Setenv("POSTMARK_ACCOUNT_TOKEN", "account-token")
	t.Setenv("JWT_SIGNING_SECRET", "test-signing-secret-at-least-32-bytes")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.SendTimeout() != 10*time.Second {
		t.Errorf("SendTimeout = %v, want 10s", cfg.SendTimeout())
	}
	if cfg.CacheTTL() != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL())
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEND_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", cfg.APIPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.SendTimeout() != 3*time.Second {
		t.Errorf("SendTimeout = %v, want 3s", cfg.SendTimeout())
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=localhost")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required variables")
	}
}
