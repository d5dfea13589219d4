package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/pgagent/internal/config"
	"github.com/ziadkadry99/pgagent/internal/logging"
)

// loadConfig loads and validates the config, then configures logging.
// Logs always go to stderr so stdout stays free for MCP and command output.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `pgagent init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}

	level := string(cfg.LogLevel)
	if verbose {
		level = string(config.LogLevelDebug)
	}
	logging.Setup(level, os.Stderr)
	return cfg, nil
}
