package worklog

import (
	"bufio"
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

	// DateLayout names daily files, e.g. 2021-12-21.log
	DateLayout = "2006-01-02"
	// FileExt is the extension of daily files
	FileExt = ".log"

	// maxLineBytes bounds one line when reading a daily file. It leaves room
	// above MaxTaskBytes for hand-edited lines.
	maxLineBytes = 1 << 20
)

// Store appends records to and reads records from the daily files in a directory.
type Store struct {
	root string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the function used to determine "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open ensures the log directory exists, creating parents as needed.
// Existing files are left untouched.
func Open(root string, opts ...Option) (*Store, error) {
	s := &Store{root: root, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := osutil.Provider.MkdirAll(root, dirPermissions); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return s, nil
}

// Dir returns the log directory.
func (s *Store) Dir() string {
	return s.root
}

// FileFor resolves the path of the daily file for day. The file may not exist yet.
func (s *Store) FileFor(day time.Time) string {
	return filepath.Join(s.root, day.Format(DateLayout)+FileExt)
}

// TodaysFile resolves the file for the current date, creating it if missing,
// and returns its path.
func (s *Store) TodaysFile() (string, error) {
	path := s.FileFor(s.now())
	file, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, filePermissions)
	if err != nil {
		return "", fmt.Errorf("create daily log: %w", err)
	}
	_ = file.Close()
	return path, nil
}

// ReadToday parses all records of today's file.
func (s *Store) ReadToday() ([]Record, error) {
	return s.ReadDay(s.now())
}

// ReadDay parses all records of the file for day. A missing file has no
// records. The first malformed line aborts the read with a *FormatError.
func (s *Store) ReadDay(day time.Time) ([]Record, error) {
	path := s.FileFor(day)
	records := []Record{}

	err := scanLines(path, func(lineNumber int, line string) error {
		r, err := ParseRecord(line)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Path = path
				fe.Line = lineNumber
			}
			return err
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Append writes one record line to the file of the day at falls in, creating
// it if needed. Callers pass the instant the record ended so the record and
// its file agree on the day. Uses O_APPEND so each record is a single write.
func (s *Store) Append(r Record, at time.Time) error {
	if err := CheckTask(r.Task); err != nil {
		return err
	}

	path := s.FileFor(at)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions)
	if err != nil {
		return fmt.Errorf("open daily log: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString(r.String() + "\n"); err != nil {
		return fmt.Errorf("append to daily log: %w", err)
	}

	slog.Debug("record appended", "path", path, "record", r.String())
	return nil
}

// Health describes how well a daily file parses.
type Health struct {
	Path         string
	TotalLines   int
	ValidRecords int
	Problems     []*FormatError
}

// Check scans the file for day without stopping at the first malformed line.
// A missing file is healthy and empty.
func (s *Store) Check(day time.Time) (Health, error) {
	health := Health{Path: s.FileFor(day), Problems: []*FormatError{}}

	err := scanLines(health.Path, func(lineNumber int, line string) error {
		health.TotalLines++
		if _, err := ParseRecord(line); err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Path = health.Path
				fe.Line = lineNumber
				health.Problems = append(health.Problems, fe)
				return nil
			}
			return err
		}
		health.ValidRecords++
		return nil
	})
	return health, err
}

// scanLines calls fn for every non-empty line of path. A missing file is not an error.
func scanLines(path string, fn func(lineNumber int, line string) error) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open daily log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := fn(lineNumber, line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read daily log: %w", err)
	}
	return nil
}
