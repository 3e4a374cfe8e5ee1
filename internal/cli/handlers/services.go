// Package handlers implements the tiem commands on top of the service layer.
package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/tiem/internal/cli"
	"github.com/xolan/tiem/internal/config"
	"github.com/xolan/tiem/internal/service"
)

// loadServices returns the services, or reports the failure, exits and returns nil.
func loadServices(deps *cli.Deps) *service.Services {
	services, err := deps.LoadServices()
	if err == nil {
		return services
	}

	var ce *config.ConfigError
	switch {
	case errors.As(err, &ce):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check your config file or set %s to the tiem directory\n", config.HomeEnv)
	default:
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the status file or log directory")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the directories exist and are writable")
	}
	deps.Exit(1)
	return nil
}
