package config

// LogLevel selects the minimum severity written by the zerolog loggers.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config is the top-level pgagent configuration, corresponding to .pgagent.yml.
type Config struct {
	Port                  int             `yaml:"port" koanf:"port"`
	DataDir               string          `yaml:"data_dir" koanf:"data_dir"`
	LogLevel              LogLevel        `yaml:"log_level" koanf:"log_level"`
	AllowAllOrigins       bool            `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	BackendURL            string          `yaml:"backend_url" koanf:"backend_url"`
	RequestTimeoutSeconds int             `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
	Highlight             HighlightConfig `yaml:"highlight" koanf:"highlight"`
	Postgres              PostgresConfig  `yaml:"postgres" koanf:"postgres"`
	Docs                  DocsConfig      `yaml:"docs" koanf:"docs"`
}

// HighlightConfig controls the syntax-highlighting code widget.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Style   string `yaml:"style" koanf:"style"`
}

// PostgresConfig holds the connection defaults used when a schema
// connection string omits a part. PGHOST, PGPORT, PGUSER, PGPASSWORD
// and PGDATABASE fill these in.
type PostgresConfig struct {
	Host     string `yaml:"host" koanf:"host"`
	Port     int    `yaml:"port" koanf:"port"`
	User     string `yaml:"user" koanf:"user"`
	Password string `yaml:"password" koanf:"password"`
	Database string `yaml:"database" koanf:"database"`
}

// DocsConfig points documentation search at postgresql.org.
type DocsConfig struct {
	BaseURL           string `yaml:"base_url" koanf:"base_url"`
	ErrorCodesURL     string `yaml:"error_codes_url" koanf:"error_codes_url"`
	SearchURL         string `yaml:"search_url" koanf:"search_url"`
	UserAgent         string `yaml:"user_agent" koanf:"user_agent"`
	CacheTTLSeconds   int    `yaml:"cache_ttl_seconds" koanf:"cache_ttl_seconds"`
	RedisURL          string `yaml:"redis_url" koanf:"redis_url"`
	RequestsPerMinute int    `yaml:"requests_per_minute" koanf:"requests_per_minute"`
}
