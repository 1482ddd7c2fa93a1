package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_FileThenEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
jwt:
  secret: file-secret
llm:
  provider: mock
portal:
  default_page_size: 6
`)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("port: got %q, want env override 9100", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("secret: got %q", cfg.JWT.Secret)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("redis db: got %d", cfg.Redis.DB)
	}
	if cfg.Portal.DefaultPageSize != 6 || cfg.Portal.MaxPageSize != 60 {
		t.Errorf("page sizes: got %d/%d", cfg.Portal.DefaultPageSize, cfg.Portal.MaxPageSize)
	}
	if got := cfg.BaseURL(); got != "http://localhost:9100" {
		t.Errorf("base url: got %q", got)
	}
	if cfg.GuestTTL() != 720*time.Hour || cfg.AccessTokenTTL() != 24*time.Hour || cfg.ConnMaxLifetime() != time.Hour {
		t.Errorf("durations: got %v/%v/%v", cfg.GuestTTL(), cfg.AccessTokenTTL(), cfg.ConnMaxLifetime())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "llm:\n  provider: mock\n"},
		{"openai without key", "jwt:\n  secret: s\n"},
		{"unknown provider", "jwt:\n  secret: s\nllm:\n  provider: bard\n"},
		{"bad duration", "jwt:\n  secret: s\n  access_token_expiration: soon\nllm:\n  provider: mock\n"},
		{"default above max", "jwt:\n  secret: s\nllm:\n  provider: mock\nportal:\n  default_page_size: 100\n  max_page_size: 10\n"},
	}
	t.Setenv("OPENAI_API_KEY", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadConfig_BadEnvValue(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: s\nllm:\n  provider: mock\n")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for non-numeric env override")
	}
	if !strings.Contains(err.Error(), "database.max_open_conns") {
		t.Errorf("error should name the field: %v", err)
	}
}
