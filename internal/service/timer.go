package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xolan/tiem/internal/status"
	"github.com/xolan/tiem/internal/worklog"
)

// Timer-specific errors
var (
	ErrEmptyTask  = errors.New("task description cannot be empty")
	ErrNotRunning = errors.New("no task is running")
)

// TimerService starts, stops and reports the current task, closing finished
// intervals into the daily log.
type TimerService struct {
	status *status.Store
	log    *worklog.Store
	now    func() time.Time
}

// NewTimerService creates a new TimerService
func NewTimerService(statusStore *status.Store, logStore *worklog.Store, now func() time.Time) *TimerService {
	if now == nil {
		now = time.Now
	}
	return &TimerService{
		status: statusStore,
		log:    logStore,
		now:    now,
	}
}

// Start records task as running from now.
// If another task is running, its interval is appended to today's log first.
// Returns the new status and the closed record, if any.
func (s *TimerService) Start(task string) (*status.Status, *worklog.Record, error) {
	task = cleanTask(task)
	if task == "" {
		return nil, nil, ErrEmptyTask
	}
	if err := worklog.CheckTask(task); err != nil {
		return nil, nil, err
	}

	current, err := s.status.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load status: %w", err)
	}

	event := status.EventStart
	if current.IsRunning() {
		event = status.EventSwitch
	}
	if err := s.transition(current, event); err != nil {
		return nil, nil, err
	}

	now := s.clock()

	if err := s.status.SetRunning(task, now); err != nil {
		return nil, nil, fmt.Errorf("failed to save status: %w", err)
	}

	var closed *worklog.Record
	if current.IsRunning() {
		r := worklog.NewRecord(current.Task, current.Started, now)
		if err := s.appendOrRestore(r, now, current); err != nil {
			return nil, nil, err
		}
		closed = &r
	}

	started := status.Running(task, now)
	slog.Debug("task started", "task", task, "event", event)
	return &started, closed, nil
}

// Stop marks the timer stopped and appends the running task's interval to today's log.
// Returns ErrNotRunning, without writing anything, when no task is running.
func (s *TimerService) Stop() (*worklog.Record, *status.Status, error) {
	current, err := s.status.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load status: %w", err)
	}
	if err := s.transition(current, status.EventStop); err != nil {
		return nil, nil, err
	}

	now := s.clock()
	r := worklog.NewRecord(current.Task, current.Started, now)

	if err := s.status.SetStopped(); err != nil {
		return nil, nil, fmt.Errorf("failed to clear status: %w", err)
	}
	if err := s.appendOrRestore(r, now, current); err != nil {
		return nil, nil, err
	}

	slog.Debug("task stopped", "task", current.Task, "minutes", r.DurationMinutes())
	return &r, &current, nil
}

// appendOrRestore logs r in the file for ended. When the append fails the
// status file is put back to previous, so a retry neither loses nor
// duplicates the interval.
func (s *TimerService) appendOrRestore(r worklog.Record, ended time.Time, previous status.Status) error {
	err := s.log.Append(r, ended)
	if err == nil {
		return nil
	}
	if restoreErr := s.status.SetRunning(previous.Task, previous.Started); restoreErr != nil {
		return fmt.Errorf("failed to log %q: %w (restoring status also failed: %v)", previous.Task, err, restoreErr)
	}
	return fmt.Errorf("failed to log %q: %w", previous.Task, err)
}

// Cancel discards the running task without logging it
func (s *TimerService) Cancel() (*status.Status, error) {
	current, err := s.status.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load status: %w", err)
	}
	if err := s.transition(current, status.EventCancel); err != nil {
		return nil, err
	}

	if err := s.status.SetStopped(); err != nil {
		return nil, fmt.Errorf("failed to clear status: %w", err)
	}

	slog.Debug("task cancelled", "task", current.Task)
	return &current, nil
}

// Status returns the current timer status
func (s *TimerService) Status() (*TimerStatus, error) {
	current, err := s.status.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load status: %w", err)
	}

	return &TimerStatus{
		Running:     current.IsRunning(),
		Status:      current,
		ElapsedTime: current.Elapsed(s.clock()),
	}, nil
}

// IsRunning checks if a task is currently running
func (s *TimerService) IsRunning() (bool, error) {
	current, err := s.status.Get()
	if err != nil {
		return false, err
	}
	return current.IsRunning(), nil
}

// StatusPath returns the status file location
func (s *TimerService) StatusPath() string {
	return s.status.Path()
}

// transition sends event to a timer machine positioned at current and
// fails unless the machine takes it.
func (s *TimerService) transition(current status.Status, event string) error {
	m, err := status.NewMachine(current.Kind)
	if err != nil {
		return err
	}
	if err := m.Transition(event); err != nil {
		if errors.Is(err, status.ErrInvalidTransition) && !current.IsRunning() {
			return ErrNotRunning
		}
		return err
	}
	slog.Debug("timer transition", "event", event, "from", current.Kind, "to", m.Current())
	return nil
}

// clock returns the current time truncated to whole seconds, matching what
// the status file can hold.
func (s *TimerService) clock() time.Time {
	return s.now().Truncate(time.Second)
}

// cleanTask folds tabs and line breaks into spaces and trims the result, so
// the task fits on one log line.
func cleanTask(task string) string {
	task = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\r', '\n':
			return ' '
		}
		return r
	}, task)
	return strings.TrimSpace(task)
}
