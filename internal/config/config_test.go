package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, expected default 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, expected sqlite", cfg.Database.Driver)
	}
	if cfg.Telegram.Enabled {
		t.Error("telegram should be disabled by default")
	}
	if cfg.Scheduler.DigestTime != "08:00" {
		t.Errorf("digest_time = %q, expected 08:00", cfg.Scheduler.DigestTime)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: "9090"
  mode: release
database:
  driver: postgres
  dsn: "host=db user=app dbname=groupboard"
telegram:
  enabled: true
  token: abc123
scheduler:
  digest_time: "07:30"
  region: DE
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, expected 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, expected postgres", cfg.Database.Driver)
	}
	if !cfg.Telegram.Enabled || cfg.Telegram.Token != "abc123" {
		t.Error("telegram settings not loaded")
	}
	if cfg.Scheduler.Region != "DE" {
		t.Errorf("region = %q, expected DE", cfg.Scheduler.Region)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("DIGEST_TIME", "09:15")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %q, expected 7070", cfg.Server.Port)
	}
	if !cfg.Telegram.Enabled || cfg.Telegram.Token != "env-token" {
		t.Error("TELEGRAM_BOT_TOKEN should enable telegram and set the token")
	}
	if cfg.Scheduler.DigestTime != "09:15" {
		t.Errorf("digest_time = %q, expected 09:15", cfg.Scheduler.DigestTime)
	}
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		addr     string
		password string
		db       int
	}{
		{"plain", "redis://localhost:6379", "localhost:6379", "", 0},
		{"with db", "redis://localhost:6379/2", "localhost:6379", "", 2},
		{"with password", "redis://:secret@redis-host:6380/1", "redis-host:6380", "secret", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.parseRedisURL(tt.url)
			if cfg.Redis.Addr != tt.addr {
				t.Errorf("addr = %q, expected %q", cfg.Redis.Addr, tt.addr)
			}
			if cfg.Redis.Password != tt.password {
				t.Errorf("password = %q, expected %q", cfg.Redis.Password, tt.password)
			}
			if cfg.Redis.DB != tt.db {
				t.Errorf("db = %d, expected %d", cfg.Redis.DB, tt.db)
			}
		})
	}
}
