package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pgagent/internal/db"
	"github.com/ziadkadry99/pgagent/internal/logging"
	mcpserver "github.com/ziadkadry99/pgagent/internal/mcp"
	"github.com/ziadkadry99/pgagent/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing query
generation, error analysis, schema inspection and documentation search as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// History is not recorded over MCP; the services only need a handle.
		database, err := db.OpenMemory()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		deps, err := server.BuildDeps(context.Background(), cfg, database)
		if err != nil {
			return err
		}
		defer deps.Close()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		logger := logging.New("mcp")
		logger.Info().Msg("pgagent MCP server started on stdio")

		srv := mcpserver.NewServer(mcpserver.Services{
			Errors: deps.Errors,
			Schema: deps.Schema,
			Docs:   deps.Docs,
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
