package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/tiem/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the effective configuration: file locations, timezone and the
default log format.

tiem works without a configuration file. Defaults:
  - status_file: ~/tiem/status.json
  - log_dir:     ~/tiem/log
  - timezone:    Local (system timezone)
  - log_format:  text

The tiem directory can be moved with the TIEM_HOME environment variable, and
both files can be overridden per invocation with --status-file and --log-dir.

Examples:
  tiem config          Show all current settings
  tiem config init     Create a sample ~/tiem/config.toml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConfig(deps)
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.InitConfig(deps)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
