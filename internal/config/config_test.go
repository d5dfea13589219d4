package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.LogLevel != LogLevelInfo {
		t.Errorf("expected default log_level %q, got %q", LogLevelInfo, cfg.LogLevel)
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Port != 5432 {
		t.Errorf("expected localhost:5432, got %s:%d", cfg.Postgres.Host, cfg.Postgres.Port)
	}
	if cfg.Postgres.User != "postgres" || cfg.Postgres.Database != "postgres" {
		t.Errorf("expected postgres user and database, got %q/%q", cfg.Postgres.User, cfg.Postgres.Database)
	}
	if cfg.Docs.BaseURL != "https://www.postgresql.org/docs/current/" {
		t.Errorf("unexpected docs base url %q", cfg.Docs.BaseURL)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout() = %v, want 30s", cfg.RequestTimeout())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.pgagent.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.LogLevel = LogLevelDebug
	original.Postgres.Host = "db.internal"
	original.Docs.RedisURL = "redis://localhost:6379/0"
	original.Highlight.Style = "monokai"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.LogLevel != original.LogLevel {
		t.Errorf("log_level: got %q, want %q", loaded.LogLevel, original.LogLevel)
	}
	if loaded.Postgres.Host != original.Postgres.Host {
		t.Errorf("postgres.host: got %q, want %q", loaded.Postgres.Host, original.Postgres.Host)
	}
	if loaded.Docs.RedisURL != original.Docs.RedisURL {
		t.Errorf("docs.redis_url: got %q, want %q", loaded.Docs.RedisURL, original.Docs.RedisURL)
	}
	if loaded.Highlight.Style != original.Highlight.Style {
		t.Errorf("highlight.style: got %q, want %q", loaded.Highlight.Style, original.Highlight.Style)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("PGAGENT_LOG_LEVEL", "warn")
	t.Setenv("PGAGENT_DOCS__REDIS_URL", "redis://cache:6379/1")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.LogLevel != LogLevelWarn {
		t.Errorf("env override failed: got %q, want %q", loaded.LogLevel, LogLevelWarn)
	}
	if loaded.Docs.RedisURL != "redis://cache:6379/1" {
		t.Errorf("nested env override failed: got %q", loaded.Docs.RedisURL)
	}
}

func TestLoadLibpqEnv(t *testing.T) {
	t.Setenv("PGHOST", "pg.example.com")
	t.Setenv("PGUSER", "app")
	t.Setenv("PGDATABASE", "inventory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Postgres.Host != "pg.example.com" {
		t.Errorf("postgres.host = %q, want %q", cfg.Postgres.Host, "pg.example.com")
	}
	if cfg.Postgres.User != "app" {
		t.Errorf("postgres.user = %q, want %q", cfg.Postgres.User, "app")
	}
	if cfg.Postgres.Database != "inventory" {
		t.Errorf("postgres.database = %q, want %q", cfg.Postgres.Database, "inventory")
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("postgres.port = %d, want default 5432", cfg.Postgres.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"negative timeout", func(c *Config) { c.RequestTimeoutSeconds = -1 }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeoutSeconds = 0 }, false},
		{"bad postgres port", func(c *Config) { c.Postgres.Port = -5 }, true},
		{"empty docs url", func(c *Config) { c.Docs.BaseURL = "" }, true},
		{"negative cache ttl", func(c *Config) { c.Docs.CacheTTLSeconds = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"1", "8080", "65535"} {
		if err := validatePort(s); err != nil {
			t.Errorf("validatePort(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"", "0", "abc", "65536"} {
		if err := validatePort(s); err == nil {
			t.Errorf("validatePort(%q) = nil, want error", s)
		}
	}
}

func TestDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/pgagent"
	if got := cfg.DBPath(); got != "/var/lib/pgagent/pgagent.db" {
		t.Errorf("DBPath() = %q", got)
	}
}
