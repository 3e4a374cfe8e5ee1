package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tiem/internal/cli"
)

// ShowConfig displays the effective configuration
func ShowConfig(deps *cli.Deps) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	cfg := services.Config.Get()
	path := services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "status_file: %s\n", services.Timer.StatusPath())
	_, _ = fmt.Fprintf(deps.Stdout, "log_dir:     %s\n", services.Log.Dir())
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:    %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "log_format:  %s\n", cfg.LogFormat)

	if !services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'tiem config init' to create a sample config file.")
	}
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	if err := services.Config.Init(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", services.Config.GetPath())
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
