package handlers

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/xolan/tiem/internal/cli"
	"github.com/xolan/tiem/internal/service"
	"github.com/xolan/tiem/internal/worklog"
)

func TestStartTimer(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	StartTimer(deps, "write report")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Started: write report at 11:23") {
		t.Errorf("expected 'Started: write report at 11:23' in output, got %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "Stopped:") {
		t.Errorf("nothing was running, got %q", stdout.String())
	}
}

func TestStartTimer_WhileRunning(t *testing.T) {
	deps, stdout, _, exitCode, clock := setupTestDepsWithClock(t)

	StartTimer(deps, "standup")
	clock.Advance(20 * time.Minute)
	stdout.Reset()

	StartTimer(deps, "write report")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Stopped: 11:23-11:43  standup (20m)") {
		t.Errorf("expected the previous task to be logged, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Started: write report") {
		t.Errorf("expected 'Started: write report' in output, got %q", stdout.String())
	}
}

func TestStartTimer_TaskTooLong(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)

	StartTimer(deps, strings.Repeat("x", worklog.MaxTaskBytes+1))

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Task is too long") {
		t.Errorf("expected 'Task is too long' error, got %q", stderr.String())
	}
	if strings.Contains(stdout.String(), "Started:") {
		t.Errorf("expected nothing started, got %q", stdout.String())
	}
}

func TestStartTimer_EmptyTask(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	StartTimer(deps, "   ")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Task cannot be empty") {
		t.Errorf("expected 'Task cannot be empty' error, got %q", stderr.String())
	}
}

func TestStartTimer_CorruptStatus(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	if err := os.WriteFile(deps.Services.Timer.StatusPath(), []byte(`{"kind":"Paused"}`), 0644); err != nil {
		t.Fatal(err)
	}

	StartTimer(deps, "task")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	output := stderr.String()
	if !strings.Contains(output, "Error: Failed to start task") {
		t.Errorf("expected start failure, got %q", output)
	}
	if !strings.Contains(output, "status file is corrupt") {
		t.Errorf("expected corrupt status hint, got %q", output)
	}
}

func TestStopTimer(t *testing.T) {
	deps, stdout, _, exitCode, clock := setupTestDepsWithClock(t)

	StartTimer(deps, "task")
	clock.Advance(90 * time.Minute)
	stdout.Reset()

	StopTimer(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Stopped: 11:23-12:53  task (1h 30m)") {
		t.Errorf("expected 'Stopped:' line in output, got %q", stdout.String())
	}
}

func TestStopTimer_NoTaskRunning(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)

	StopTimer(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "No task running") {
		t.Errorf("expected 'No task running' in output, got %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no stderr output, got %q", stderr.String())
	}
}

func TestCancelTimer(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	StartTimer(deps, "distraction")
	stdout.Reset()

	CancelTimer(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Cancelled: distraction (not logged)") {
		t.Errorf("expected 'Cancelled:' in output, got %q", stdout.String())
	}

	day, err := deps.Services.Log.Today()
	if err != nil {
		t.Fatalf("Today() returned unexpected error: %v", err)
	}
	if len(day.Records) != 0 {
		t.Errorf("cancel should not log, got %+v", day.Records)
	}
}

func TestCancelTimer_NoTaskRunning(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	CancelTimer(deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "No task is running") {
		t.Errorf("expected 'No task is running' error, got %q", stderr.String())
	}
}

func TestShowTimerStatus_Stopped(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ShowTimerStatus(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Stopped") {
		t.Errorf("expected 'Stopped' in output, got %q", stdout.String())
	}
}

func TestShowTimerStatus_Running(t *testing.T) {
	deps, stdout, _, exitCode, clock := setupTestDepsWithClock(t)

	StartTimer(deps, "deep work")
	clock.Advance(83 * time.Minute)
	stdout.Reset()

	ShowTimerStatus(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	output := stdout.String()
	for _, want := range []string{"Running:", "deep work", "Started: today at 11:23", "Elapsed: 1h 23m"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got %q", want, output)
		}
	}
}

func TestShowTimerStatus_ServicesError(t *testing.T) {
	stdout, stderr, exitCode := &strings.Builder{}, &strings.Builder{}, 0
	deps := &cli.Deps{
		Stdout: stdout,
		Stderr: stderr,
		Exit:   func(code int) { exitCode = code },
		NewServices: func(service.Options) (*service.Services, error) {
			return nil, errors.New("permission denied")
		},
	}

	ShowTimerStatus(deps)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(stderr.String(), "permission denied") {
		t.Errorf("expected details in stderr, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no stdout output, got %q", stdout.String())
	}
}

func TestWatchTimerStatus_Cancelled(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	WatchTimerStatus(ctx, deps, 10*time.Millisecond)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Stopped") {
		t.Errorf("expected initial status in output, got %q", stdout.String())
	}
}
