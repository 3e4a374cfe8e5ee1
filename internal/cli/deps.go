package cli

import (
	"io"
	"os"

	"github.com/xolan/tiem/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is built on first use from Options unless preset.
	Services    *service.Services
	Options     service.Options
	NewServices func(service.Options) (*service.Services, error)
}

// DefaultDeps creates a new Deps with default values
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Exit:        os.Exit,
		NewServices: service.NewServices,
	}
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services) *Deps {
	d := DefaultDeps()
	d.Services = services
	return d
}

// LoadServices returns the services, building them from Options on first call.
func (d *Deps) LoadServices() (*service.Services, error) {
	if d.Services != nil {
		return d.Services, nil
	}
	build := d.NewServices
	if build == nil {
		build = service.NewServices
	}
	services, err := build(d.Options)
	if err != nil {
		return nil, err
	}
	d.Services = services
	return services, nil
}
