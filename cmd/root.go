package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/xolan/tiem/internal/cli/handlers"
)

var (
	verboseFlag    bool
	statusFileFlag string
	logDirFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "tiem",
	Short: "A personal time tracker",
	Long: `tiem records what you are working on and for how long.

One task runs at a time. Starting a new task closes the running one into
today's log; stopping closes it without starting another.

Usage:
  tiem start <task>        Start a task (closes the running one)
  tiem stop                Stop the running task and log it
  tiem status              Show the running task
  tiem cancel              Discard the running task without logging it
  tiem log                 Show today's log
  tiem validate            Check today's log file for malformed lines
  tiem config              Show the effective configuration
  tiem tui                 Launch the interactive terminal UI

Files:
  ~/tiem/status.json       Current task (override with $TIEM_HOME or --status-file)
  ~/tiem/log/YYYY-MM-DD.log  One file per day: start, end and task, tab separated`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(deps.Stderr, verboseFlag)
		deps.Options.StatusFile = statusFileFlag
		deps.Options.LogDir = logDirFlag
	},
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		// No args: show the current status
		handlers.ShowTimerStatus(deps)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&statusFileFlag, "status-file", "", "path of the status file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logDirFlag, "log-dir", "", "directory of the daily log files (overrides config)")
}

// setupLogging installs the default slog handler. Debug lines are only shown
// with --verbose; command output never goes through slog.
func setupLogging(w io.Writer, verbose bool) {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tiem version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
