package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xolan/tiem/internal/osutil"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	// initialContent is written to a status file that does not exist yet.
	initialContent = "{}"
)

// Store reads and overwrites the status file.
type Store struct {
	path string
	loc  *time.Location
}

// Option configures a Store.
type Option func(*Store)

// WithLocation sets the timezone stored timestamps are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Open ensures the status file at path exists, initializing it to "{}" if absent.
// An existing file is left untouched, so Open is idempotent.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}

	if err := osutil.Provider.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("create status directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePermissions)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return s, nil
		}
		return nil, fmt.Errorf("create status file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString(initialContent); err != nil {
		return nil, fmt.Errorf("initialize status file: %w", err)
	}
	slog.Debug("status file created", "path", path)
	return s, nil
}

// Path returns the location of the status file.
func (s *Store) Path() string {
	return s.path
}

// Get reads and parses the current status.
func (s *Store) Get() (Status, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Status{}, fmt.Errorf("read status file: %w", err)
	}

	st, err := Decode(data, s.loc)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = s.path
		}
		return Status{}, err
	}
	return st, nil
}

// SetRunning overwrites the status with Running{task, startedAt}.
func (s *Store) SetRunning(task string, startedAt time.Time) error {
	return s.write(Running(task, startedAt.In(s.loc)))
}

// SetStopped overwrites the status with Stopped.
func (s *Store) SetStopped() error {
	return s.write(Stopped())
}

// write replaces the status file with st.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func (s *Store) write(st Status) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, filePermissions); err != nil {
		return fmt.Errorf("write status file: %w", err)
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("replace status file: %w", err)
	}

	slog.Debug("status written", "path", s.path, "status", st.String())
	return nil
}
