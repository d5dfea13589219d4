package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pgagent/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pgagent configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure pgagent and generates a .pgagent.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
