package cmd

import (
	"github.com/xolan/tiem/internal/cli"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps = cli.Deps

// deps is the global dependencies instance used by commands.
// In production, this is cli.DefaultDeps(). Tests can replace it.
var deps = cli.DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = cli.DefaultDeps()
}
