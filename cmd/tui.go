package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/tiem/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for tiem.

The TUI has three tabs: Timer (the running task with a live elapsed time),
Log (the records of a day) and Config (settings and color theme). It reloads
when the status file or a log file changes from another terminal.

Keyboard shortcuts:
  - 1-3 or Tab: Switch tabs
  - s: Start or switch task (Timer)
  - x: Stop the running task (Timer)
  - c: Cancel the running task without logging it (Timer)
  - h/l: Previous/next day, t: today (Log)
  - t or Enter: Choose a theme (Config)
  - r: Reload
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application
func runTUI() {
	services, err := deps.LoadServices()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error initializing services: %v\n", err)
		deps.Exit(1)
		return
	}

	if err := tui.Run(services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
