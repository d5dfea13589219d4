package config

// DefaultConfigFile is where the wizard writes and the CLI reads by default.
const DefaultConfigFile = ".pgagent.yml"

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:                  8080,
		DataDir:               ".pgagent",
		LogLevel:              LogLevelInfo,
		RequestTimeoutSeconds: 30,
		Highlight: HighlightConfig{
			Enabled: true,
			Style:   "github",
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "",
			Database: "postgres",
		},
		Docs: DocsConfig{
			BaseURL:           "https://www.postgresql.org/docs/current/",
			ErrorCodesURL:     "https://www.postgresql.org/docs/current/errcodes-appendix.html",
			SearchURL:         "https://www.postgresql.org/search/",
			UserAgent:         "Mozilla/5.0 (compatible; pgagent/1.0)",
			CacheTTLSeconds:   3600,
			RequestsPerMinute: 600,
		},
	}
}
