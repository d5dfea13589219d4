package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// highlightStyles are the chroma styles offered by the wizard.
var highlightStyles = []string{"github", "monokai", "dracula", "solarized-light", "none"}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .pgagent.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to pgagent! Let's configure your workspace.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. HTTP port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. PostgreSQL defaults.
	hostPrompt := promptui.Prompt{Label: "Default PostgreSQL host", Default: cfg.Postgres.Host}
	if cfg.Postgres.Host, err = hostPrompt.Run(); err != nil {
		return nil, fmt.Errorf("postgres host: %w", err)
	}

	pgPortPrompt := promptui.Prompt{
		Label:    "Default PostgreSQL port",
		Default:  strconv.Itoa(cfg.Postgres.Port),
		Validate: validatePort,
	}
	pgPortStr, err := pgPortPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("postgres port: %w", err)
	}
	cfg.Postgres.Port, _ = strconv.Atoi(pgPortStr)

	userPrompt := promptui.Prompt{Label: "Default PostgreSQL user", Default: cfg.Postgres.User}
	if cfg.Postgres.User, err = userPrompt.Run(); err != nil {
		return nil, fmt.Errorf("postgres user: %w", err)
	}

	dbPrompt := promptui.Prompt{Label: "Default PostgreSQL database", Default: cfg.Postgres.Database}
	if cfg.Postgres.Database, err = dbPrompt.Run(); err != nil {
		return nil, fmt.Errorf("postgres database: %w", err)
	}

	// 3. Highlighting style.
	stylePrompt := promptui.Select{
		Label: "Select code highlighting style",
		Items: highlightStyles,
	}
	_, style, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight style: %w", err)
	}
	if style == "none" {
		cfg.Highlight.Enabled = false
	} else {
		cfg.Highlight.Style = style
	}

	// 4. Optional shared documentation cache.
	redisPrompt := promptui.Prompt{
		Label:   "Redis URL for the documentation cache (leave blank for in-memory)",
		Default: "",
	}
	if cfg.Docs.RedisURL, err = redisPrompt.Run(); err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
