// Package osutil provides abstractions for OS-level operations to enable testing.
package osutil

import "os"

// PathProvider abstracts OS-level operations for path resolution.
// Used to enable testing of error paths in config.AppDir and the stores' Open.
type PathProvider interface {
	UserHomeDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	LookupEnv(key string) (string, bool)
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserHomeDir returns the current user's home directory.
func (DefaultPathProvider) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// LookupEnv retrieves the value of the environment variable named by key.
func (DefaultPathProvider) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Provider is the package-level path provider instance.
// In production, this is DefaultPathProvider. Tests can replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}
