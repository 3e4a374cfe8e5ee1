// Package status persists the single current timer state of tiem.
//
// The state is a tagged union: either Running with a task and a start time, or
// Stopped. It is stored as one JSON document of the form
//
//	{"kind":"Running","content":{"task":"write report","started":"2021-12-21T11:23:45"}}
//	{"kind":"Stopped","content":null}
//
// A freshly created status file contains "{}", which reads back as Stopped.
package status

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the layout of the started timestamp: no zone, no fractional seconds.
const TimeLayout = "2006-01-02T15:04:05"

// Kind identifies the variant of a Status.
type Kind string

const (
	KindStopped Kind = "Stopped"
	KindRunning Kind = "Running"
)

// Status is the current timer state. Build values with Running or Stopped;
// Task and Started are only meaningful when Kind is KindRunning.
type Status struct {
	Kind    Kind
	Task    string
	Started time.Time
}

// Running returns a Running status. The start time is truncated to whole seconds.
func Running(task string, started time.Time) Status {
	return Status{
		Kind:    KindRunning,
		Task:    task,
		Started: started.Truncate(time.Second),
	}
}

// Stopped returns the idle status.
func Stopped() Status {
	return Status{Kind: KindStopped}
}

// IsRunning reports whether a task is being timed.
func (s Status) IsRunning() bool {
	return s.Kind == KindRunning
}

// Elapsed returns the time since the task started, or zero when stopped.
func (s Status) Elapsed(now time.Time) time.Duration {
	if !s.IsRunning() {
		return 0
	}
	return now.Sub(s.Started)
}

func (s Status) String() string {
	if !s.IsRunning() {
		return string(KindStopped)
	}
	return fmt.Sprintf("%s{%q since %s}", KindRunning, s.Task, s.Started.Format(TimeLayout))
}

type envelope struct {
	Kind    Kind            `json:"kind"`
	Content json.RawMessage `json:"content"`
}

type runningContent struct {
	Task    string `json:"task"`
	Started string `json:"started"`
}

// MarshalJSON encodes the adjacently tagged form. Started is written in its own
// location; callers wanting a specific zone convert before marshalling.
func (s Status) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindRunning:
		content, err := json.Marshal(runningContent{
			Task:    s.Task,
			Started: s.Started.Format(TimeLayout),
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(envelope{Kind: KindRunning, Content: content})
	case KindStopped, "":
		return json.Marshal(envelope{Kind: KindStopped, Content: json.RawMessage("null")})
	default:
		return nil, fmt.Errorf("unknown status kind %q", s.Kind)
	}
}

// Decode parses a status document, interpreting the started timestamp in loc.
// The document is checked against the status schema first; any failure is
// returned as a *ParseError.
func Decode(data []byte, loc *time.Location) (Status, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Stopped(), nil
	}

	if err := validateSchema(data); err != nil {
		return Status{}, err
	}

	var env struct {
		Kind    *Kind           `json:"kind"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return Status{}, &ParseError{Reason: "invalid JSON", Err: err}
	}

	// "{}" is the initial, absent state.
	if env.Kind == nil || *env.Kind == KindStopped {
		return Stopped(), nil
	}
	if *env.Kind != KindRunning {
		return Status{}, &ParseError{Reason: fmt.Sprintf("unknown kind %q", *env.Kind)}
	}

	var content runningContent
	if err := json.Unmarshal(env.Content, &content); err != nil {
		return Status{}, &ParseError{Reason: "invalid running content", Err: err}
	}

	if loc == nil {
		loc = time.Local
	}
	started, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(content.Started), loc)
	if err != nil {
		return Status{}, &ParseError{Reason: fmt.Sprintf("invalid started time %q", content.Started), Err: err}
	}

	return Running(content.Task, started), nil
}

// UnmarshalJSON decodes the adjacently tagged form in the local timezone.
func (s *Status) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data, time.Local)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
