package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/tiem/internal/cli/handlers"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <task>",
	Short: "Start working on a task",
	Long: `Start working on a task. All arguments are joined into the task text.

If another task is running, it is stopped first and its interval is appended
to today's log.

Examples:
  tiem start write report
  tiem start "review PR 42"`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeTasks,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.StartTimer(deps, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
