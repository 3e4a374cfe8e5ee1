package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xolan/tiem/internal/cli/handlers"
)

var (
	watchFlag    bool
	debounceFlag time.Duration
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running task",
	Long: `Show the running task, when it started and how long it has been running.

With --watch, keep running and reprint the status whenever the status file or
a daily log changes (for example from another terminal). Stop with Ctrl+C.

Examples:
  tiem status
  tiem status --watch`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !watchFlag {
			handlers.ShowTimerStatus(deps)
			return
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		handlers.WatchTimerStatus(ctx, deps, debounceFlag)
	},
}

func init() {
	statusCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "reprint the status whenever it changes")
	statusCmd.Flags().DurationVar(&debounceFlag, "debounce", 200*time.Millisecond, "wait this long for changes to settle before reprinting")
	rootCmd.AddCommand(statusCmd)
}
