package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xolan/tiem/internal/osutil"
)

const (
	// AppName is the application name used for the data directory
	AppName = "tiem"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// StatusFile is the default name of the JSON status file
	StatusFile = "status.json"
	// LogDirName is the default name of the daily log directory
	LogDirName = "log"
	// HomeEnv overrides the application directory when set
	HomeEnv = "TIEM_HOME"
)

// Valid values for log_format
var validLogFormats = []string{"text", "json", "yaml"}

// ConfigError reports that the application's locations or settings could not be resolved.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config represents the application configuration
type Config struct {
	// StatusFile is the path of the JSON file holding the current timer
	StatusFile string `toml:"status_file"`
	// LogDir is the directory holding one log file per day
	LogDir string `toml:"log_dir"`
	// Timezone is the IANA name used to interpret stored timestamps, or "Local"
	Timezone string `toml:"timezone"`
	// LogFormat is the default output format of `tiem log`
	LogFormat string `toml:"log_format"`
	// Theme is the TUI color theme; unknown names fall back to the default
	Theme string `toml:"theme,omitempty"`
}

// DefaultConfig returns a Config with defaults. Paths are left empty and are
// filled in by ResolvePaths.
func DefaultConfig() Config {
	return Config{
		Timezone:  "Local",
		LogFormat: "text",
	}
}

// AppDir returns the directory holding the status file, log directory and config.
// TIEM_HOME takes precedence over <home>/tiem.
func AppDir() (string, error) {
	if override, ok := osutil.Provider.LookupEnv(HomeEnv); ok {
		override = strings.TrimSpace(override)
		if override != "" {
			return expandHome(override)
		}
	}

	home, err := osutil.Provider.UserHomeDir()
	if err != nil {
		return "", &ConfigError{Op: "resolve home directory", Err: err}
	}
	if home == "" {
		return "", &ConfigError{Op: "resolve home directory", Err: errors.New("home directory is empty")}
	}
	return filepath.Join(home, AppName), nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	appDir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads the TOML config at path on top of the defaults, then normalizes
// and validates it.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, &ConfigError{Op: "parse " + path, Err: err}
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, returning DefaultConfig when the file
// does not exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, &ConfigError{Op: "stat " + path, Err: err}
	}
	return Load(path)
}

// Normalize trims fields, lower-cases enums and expands a leading ~ in paths.
func (c *Config) Normalize() error {
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		c.Timezone = "Local"
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))

	var err error
	if c.StatusFile, err = expandHome(strings.TrimSpace(c.StatusFile)); err != nil {
		return err
	}
	if c.LogDir, err = expandHome(strings.TrimSpace(c.LogDir)); err != nil {
		return err
	}
	return nil
}

// Validate checks that the timezone and log format are usable.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return &ConfigError{Op: "validate timezone", Err: err}
	}
	if !IsValidLogFormat(c.LogFormat) {
		return &ConfigError{
			Op:  "validate log_format",
			Err: fmt.Errorf("%q is not one of %s", c.LogFormat, strings.Join(validLogFormats, ", ")),
		}
	}
	return nil
}

// Location returns the time.Location for the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ResolvePaths fills empty StatusFile and LogDir with defaults under appDir.
func (c *Config) ResolvePaths(appDir string) {
	if c.StatusFile == "" {
		c.StatusFile = filepath.Join(appDir, StatusFile)
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(appDir, LogDirName)
	}
}

// IsValidLogFormat reports whether format is a supported `tiem log` format.
func IsValidLogFormat(format string) bool {
	for _, f := range validLogFormats {
		if f == format {
			return true
		}
	}
	return false
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# tiem configuration file

# Path of the JSON file holding the current timer (default: ~/tiem/status.json)
# status_file = "~/tiem/status.json"

# Directory holding one log file per day (default: ~/tiem/log)
# log_dir = "~/tiem/log"

# Timezone: IANA timezone name (e.g., "Europe/Berlin") or "Local"
timezone = "Local"

# Default output format of 'tiem log': "text", "json" or "yaml"
log_format = "text"

# Color theme of 'tiem tui' (any bubbletint theme id, e.g. "dracula", "nord")
# theme = "dracula"
`
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := osutil.Provider.UserHomeDir()
		if err != nil {
			return "", &ConfigError{Op: "expand " + path, Err: err}
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
