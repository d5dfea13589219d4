package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pgagent/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pgagent",
	Short: "PostgreSQL query, troubleshooting, schema and documentation helper",
	Long: `pgagent serves a single-page PostgreSQL helper: it generates queries,
explains error messages, describes table schemas and searches the official
documentation. The same operations are available to AI agents over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadDotEnv()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadDotEnv reads .env then .env.local; both are optional and neither
// overrides variables already set.
func loadDotEnv() {
	for _, f := range []string{".env", ".env.local"} {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: reading %s: %v\n", f, err)
			}
		}
	}
}
