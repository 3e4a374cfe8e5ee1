package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xolan/tiem/internal/cli"
	"github.com/xolan/tiem/internal/service"
	"github.com/xolan/tiem/internal/status"
	"github.com/xolan/tiem/internal/watch"
	"github.com/xolan/tiem/internal/worklog"
)

// StartTimer starts task, closing the running task into today's log first
func StartTimer(deps *cli.Deps, task string) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	started, closed, err := services.Timer.Start(task)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTask):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Task cannot be empty")
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: tiem start <task>")
			_, _ = fmt.Fprintln(deps.Stderr, "Example: tiem start write report")
		case errors.Is(err, worklog.ErrTaskTooLong):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Task is too long")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: A task may be at most %d bytes, got %d\n", worklog.MaxTaskBytes, len(task))
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Shorten the description")
		default:
			printStoreError(deps, "Failed to start task", err)
		}
		deps.Exit(1)
		return
	}

	if closed != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s\n", cli.FormatRecord(*closed))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Started: %s at %s\n", started.Task, started.Started.Format("15:04"))
}

// StopTimer stops the running task and logs it
func StopTimer(deps *cli.Deps) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	record, _, err := services.Timer.Stop()
	if err != nil {
		if errors.Is(err, service.ErrNotRunning) {
			_, _ = fmt.Fprintln(deps.Stdout, "No task running")
			return
		}
		printStoreError(deps, "Failed to stop task", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s\n", cli.FormatRecord(*record))
}

// CancelTimer discards the running task without logging it
func CancelTimer(deps *cli.Deps) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	cancelled, err := services.Timer.Cancel()
	if err != nil {
		if errors.Is(err, service.ErrNotRunning) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No task is running")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Start one with 'tiem start <task>'")
		} else {
			printStoreError(deps, "Failed to cancel task", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Cancelled: %s (not logged)\n", cancelled.Task)
}

// ShowTimerStatus shows the current timer status
func ShowTimerStatus(deps *cli.Deps) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	st, err := services.Timer.Status()
	if err != nil {
		printStoreError(deps, "Failed to read status", err)
		deps.Exit(1)
		return
	}
	slog.Debug("timer status", "kind", st.Status.Kind, "events", status.ValidEvents(st.Status.Kind))
	printTimerStatus(deps, st)
}

// WatchTimerStatus prints the status, then reprints it whenever the status
// file or a daily log changes, until ctx is cancelled.
func WatchTimerStatus(ctx context.Context, deps *cli.Deps, debounce time.Duration) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	changes := make(chan watch.ChangeEvent, 1)
	w, err := watch.NewWatcher(services.Timer.StatusPath(), services.Log.Dir(), debounce, func(ev watch.ChangeEvent) {
		select {
		case changes <- ev:
		default:
		}
	})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to watch the status file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	ShowTimerStatus(deps)
	for {
		select {
		case <-ctx.Done():
			<-done
			return
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
				deps.Exit(1)
			}
			return
		case ev := <-changes:
			slog.Debug("status changed", "path", ev.Path, "change", ev.ChangeType)
			_, _ = fmt.Fprintln(deps.Stdout)
			ShowTimerStatus(deps)
		}
	}
}

func printTimerStatus(deps *cli.Deps, st *service.TimerStatus) {
	if !st.Running {
		_, _ = fmt.Fprintln(deps.Stdout, "Stopped")
		_, _ = fmt.Fprintln(deps.Stdout, "Start a task with: tiem start <task>")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Running:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", st.Status.Task)
	_, _ = fmt.Fprintf(deps.Stdout, "  Started: %s\n", cli.FormatTimerStartTime(st.Status.Started, st.Status.Started.Add(st.ElapsedTime)))
	_, _ = fmt.Fprintf(deps.Stdout, "  Elapsed: %s\n", cli.FormatElapsedTime(st.ElapsedTime))
}

// printStoreError reports err with a hint matching its type.
func printStoreError(deps *cli.Deps, what string, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", what)
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)

	var pe *status.ParseError
	if errors.As(err, &pe) {
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: The status file is corrupt. Fix it by hand or replace its contents with {}")
		if pe.Path != "" {
			_, _ = fmt.Fprintf(deps.Stderr, "Status file: %s\n", pe.Path)
		}
	}
}
