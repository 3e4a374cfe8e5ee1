package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/tiem/internal/cli/handlers"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running task and log it",
	Long: `Stop the running task and append its interval to today's log.

Stopping when nothing is running prints a notice and changes nothing.

Examples:
  tiem stop`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.StopTimer(deps)
	},
}

// cancelCmd represents the cancel command
var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the running task without logging it",
	Long: `Discard the running task. Nothing is written to the log.

Examples:
  tiem cancel`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.CancelTimer(deps)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(cancelCmd)
}
