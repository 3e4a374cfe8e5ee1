package worklog

import (
	"errors"
	"fmt"
)

// ErrInvalidTask is returned when a task cannot be written on one record line.
var ErrInvalidTask = errors.New("task must not contain tabs or line breaks")

// ErrTaskTooLong is returned when a task exceeds MaxTaskBytes.
var ErrTaskTooLong = fmt.Errorf("task must not exceed %d bytes", MaxTaskBytes)

// FormatError reports a log line that does not match HH:MM<TAB>HH:MM<TAB>task.
type FormatError struct {
	Path    string // Daily file, when known
	Line    int    // 1-indexed line number, when known
	Content string // Raw content of the offending line
	Reason  string
	Err     error
}

func (e *FormatError) Error() string {
	loc := "log"
	if e.Path != "" {
		loc = e.Path
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	msg := fmt.Sprintf("%s: %s: %q", loc, e.Reason, e.Content)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
