package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/tiem/internal/cli/handlers"
)

var (
	dateFlag   string
	formatFlag string
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the records of a day",
	Long: `Show the records logged today, or on --date.

Formats:
  text   one line per record with a total (default)
  json   the day as a JSON document
  yaml   the day as a YAML document

The default format can be set with log_format in the config file.

Examples:
  tiem log
  tiem log --date 2021-12-21
  tiem log --date yesterday
  tiem log --date "3 days ago"
  tiem log --format json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowLog(deps, dateFlag, formatFlag)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a daily log file for malformed lines",
	Long: `Check today's log file, or the one for --date, and list every line that is
not HH:MM<TAB>HH:MM<TAB>task.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ValidateLog(deps, dateFlag)
	},
}

func init() {
	logCmd.Flags().StringVarP(&dateFlag, "date", "d", "", "day to show: YYYY-MM-DD, DD/MM/YYYY, today, yesterday or 'N days ago'")
	logCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "output format: text, json or yaml")
	_ = logCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	validateCmd.Flags().StringVarP(&dateFlag, "date", "d", "", "day to check, in the same forms as log --date")
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(validateCmd)
}
