package service

import (
	"time"

	"github.com/xolan/tiem/internal/config"
	"github.com/xolan/tiem/internal/status"
	"github.com/xolan/tiem/internal/worklog"
)

// Services holds all service instances used by the application
type Services struct {
	Timer  *TimerService
	Log    *LogService
	Config *ConfigService
}

// Options overrides locations and the clock when building Services.
type Options struct {
	StatusFile string // Overrides the configured status file
	LogDir     string // Overrides the configured log directory
	Now        func() time.Time
}

// NewServices loads the config, applies opts and opens both stores.
func NewServices(opts Options) (*Services, error) {
	appDir, err := config.AppDir()
	if err != nil {
		return nil, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	if opts.StatusFile != "" {
		cfg.StatusFile = opts.StatusFile
	}
	if opts.LogDir != "" {
		cfg.LogDir = opts.LogDir
	}
	cfg.ResolvePaths(appDir)

	return NewServicesWithConfig(configPath, cfg, opts.Now)
}

// NewServicesWithConfig opens the stores named by cfg (useful for testing)
func NewServicesWithConfig(configPath string, cfg config.Config, now func() time.Time) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, &config.ConfigError{Op: "load timezone", Err: err}
	}

	if now == nil {
		now = time.Now
	}
	localNow := func() time.Time { return now().In(loc) }

	statusStore, err := status.Open(cfg.StatusFile, status.WithLocation(loc))
	if err != nil {
		return nil, err
	}

	logStore, err := worklog.Open(cfg.LogDir, worklog.WithClock(localNow))
	if err != nil {
		return nil, err
	}

	return &Services{
		Timer:  NewTimerService(statusStore, logStore, localNow),
		Log:    NewLogService(logStore, localNow),
		Config: NewConfigService(configPath, cfg),
	}, nil
}
