package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for tiem.

Besides commands and flags, 'tiem start <TAB>' completes the tasks already
logged today, and 'tiem log --format <TAB>' completes the output formats.

Bash:
  source <(tiem completion bash)
  tiem completion bash > ~/.local/share/bash-completion/completions/tiem

Zsh:
  tiem completion zsh > "${fpath[1]}/_tiem"

Fish:
  tiem completion fish > ~/.config/fish/completions/tiem.fish

PowerShell:
  tiem completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(deps.Stdout, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
	}
}

// completeTasks offers the distinct tasks of today's log, most recent first.
// Only the first word is completed; later words are free text.
func completeTasks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	services, err := deps.LoadServices()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	day, err := services.Log.Today()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	seen := make(map[string]bool)
	var tasks []string
	for i := len(day.Records) - 1; i >= 0; i-- {
		task := day.Records[i].Task
		if seen[task] || !strings.HasPrefix(task, toComplete) {
			continue
		}
		seen[task] = true
		tasks = append(tasks, task)
	}
	return tasks, cobra.ShellCompDirectiveNoFileComp
}
