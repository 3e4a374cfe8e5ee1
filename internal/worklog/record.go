// Package worklog stores completed time intervals in one plain-text file per day.
//
// Each line of a daily file is one record:
//
//	09:00	09:30	standup
//
// i.e. start time, end time and task text separated by tabs. Times are
// zero-padded 24-hour HH:MM.
package worklog

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TimeLayout is the layout of the start and end fields.
	TimeLayout = "15:04"
	// fieldCount is the number of tab-separated fields on a line.
	fieldCount = 3
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// At returns the time of day of t, truncated to the minute.
func At(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay parses a strict, zero-padded HH:MM value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("%q is not HH:MM", s)
	}
	hour, okH := twoDigits(s[0:2])
	minute, okM := twoDigits(s[3:5])
	if !okH || !okM {
		return TimeOfDay{}, fmt.Errorf("%q is not HH:MM", s)
	}
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%q is out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// MarshalText implements encoding.TextMarshaler so exports show HH:MM.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Record is one completed interval.
type Record struct {
	Started TimeOfDay `json:"started" yaml:"started"`
	Ended   TimeOfDay `json:"ended" yaml:"ended"`
	Task    string    `json:"task" yaml:"task"`
}

// NewRecord builds a record from two instants, truncating both to the minute.
func NewRecord(task string, started, ended time.Time) Record {
	return Record{
		Started: At(started),
		Ended:   At(ended),
		Task:    task,
	}
}

// String returns the tab-separated line form, without a trailing newline.
func (r Record) String() string {
	return r.Started.String() + "\t" + r.Ended.String() + "\t" + r.Task
}

// DurationMinutes returns the length of the interval. An end earlier than the
// start is taken to cross midnight.
func (r Record) DurationMinutes() int {
	d := r.Ended.Minutes() - r.Started.Minutes()
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// ParseRecord parses one tab-separated line.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimSuffix(line, "\r")
	fields := strings.Split(line, "\t")
	if len(fields) != fieldCount {
		return Record{}, &FormatError{
			Content: line,
			Reason:  fmt.Sprintf("expected %d tab-separated fields, got %d", fieldCount, len(fields)),
		}
	}

	started, err := ParseTimeOfDay(fields[0])
	if err != nil {
		return Record{}, &FormatError{Content: line, Reason: "incorrect started time format", Err: err}
	}
	ended, err := ParseTimeOfDay(fields[1])
	if err != nil {
		return Record{}, &FormatError{Content: line, Reason: "incorrect ended time format", Err: err}
	}

	return Record{Started: started, Ended: ended, Task: fields[2]}, nil
}

// MaxTaskBytes is the longest task, in bytes, a record may carry.
const MaxTaskBytes = 4096

// ValidTask reports whether task can be stored on a single record line.
func ValidTask(task string) bool {
	return !strings.ContainsAny(task, "\t\r\n")
}

// CheckTask returns ErrInvalidTask or ErrTaskTooLong when task cannot be
// written as a record.
func CheckTask(task string) error {
	if !ValidTask(task) {
		return ErrInvalidTask
	}
	if len(task) > MaxTaskBytes {
		return ErrTaskTooLong
	}
	return nil
}
