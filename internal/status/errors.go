package status

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a timer event is not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid timer transition")

// ParseError reports status file contents that are not a valid status document.
type ParseError struct {
	Path   string // File the document was read from, if any
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse status"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
