package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// libpqEnv maps the standard libpq variables onto postgres defaults.
var libpqEnv = map[string]string{
	"PGHOST":     "postgres.host",
	"PGPORT":     "postgres.port",
	"PGUSER":     "postgres.user",
	"PGPASSWORD": "postgres.password",
	"PGDATABASE": "postgres.database",
}

// Load reads configuration from the given YAML file, then overlays the
// libpq environment (PGHOST, ...) and finally PGAGENT_* overrides.
// Nested keys use a double underscore: PGAGENT_DOCS__REDIS_URL.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PG", ".", func(s string) string {
		return libpqEnv[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading libpq env: %w", err)
	}

	// Overlay environment variables: PGAGENT_PORT -> port, etc.
	if err := k.Load(env.Provider("PGAGENT_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "PGAGENT_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log_level values.
var validLogLevels = map[LogLevel]bool{
	LogLevelDebug: true,
	LogLevelInfo:  true,
	LogLevelWarn:  true,
	LogLevelError: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must be non-negative")
	}

	if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
		return fmt.Errorf("invalid postgres.port %d", c.Postgres.Port)
	}

	if c.Docs.BaseURL == "" {
		return fmt.Errorf("docs.base_url is required")
	}

	if c.Docs.CacheTTLSeconds < 0 {
		return fmt.Errorf("docs.cache_ttl_seconds must be non-negative")
	}

	if c.Docs.RequestsPerMinute < 0 {
		return fmt.Errorf("docs.requests_per_minute must be non-negative")
	}

	return nil
}

// RequestTimeout bounds a single form submission. Zero disables the bound.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// DBPath is the SQLite file holding history and preferences.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "pgagent.db")
}

// CacheTTL is how long fetched documentation pages stay cached.
func (c *DocsConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
