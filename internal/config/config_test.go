package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "a-secret-that-is-long-enough-for-hmac")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Addr)
	}
	if cfg.KV.Backend != BackendNone {
		t.Errorf("expected backend none, got %q", cfg.KV.Backend)
	}
	if cfg.KV.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.KV.Timeout)
	}
	if cfg.Session.TTL != 168*time.Hour {
		t.Errorf("expected 168h ttl, got %v", cfg.Session.TTL)
	}
	if !cfg.AuthRequired {
		t.Error("expected auth to be required by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("KV_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KV_TIMEOUT", "500ms")
	t.Setenv("AUTH_REQUIRED", "false")
	t.Setenv("ADMIN_USERNAME", "admin")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.KV.Backend != BackendRedis || cfg.KV.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.KV.Timeout != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", cfg.KV.Timeout)
	}
	if cfg.Admin.Username != "admin" {
		t.Errorf("expected admin, got %q", cfg.Admin.Username)
	}
	if cfg.Session.Secret == "" {
		t.Error("expected dev session secret when auth is not required")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "addr: \":7070\"\nsession_secret: from-file-secret-long-enough-000000\ncontact_to: me@example.com\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.SMTP.To != "me@example.com" {
		t.Errorf("config file not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"KV_BACKEND": "mongo", "SESSION_SECRET": "x"}},
		{"redis without url", map[string]string{"KV_BACKEND": "redis", "SESSION_SECRET": "x"}},
		{"postgres without url", map[string]string{"KV_BACKEND": "postgres", "SESSION_SECRET": "x"}},
		{"libsql without url", map[string]string{"KV_BACKEND": "libsql", "SESSION_SECRET": "x"}},
		{"auth without secret", map[string]string{"AUTH_REQUIRED": "true", "SESSION_SECRET": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(t.TempDir()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
