package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/tiem/internal/cli"
	"github.com/xolan/tiem/internal/config"
	"github.com/xolan/tiem/internal/service"
)

// testClock is a settable clock shared by the services under test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, stdout, stderr, exitCode, _ := setupTestDepsWithClock(t)
	return deps, stdout, stderr, exitCode
}

func setupTestDepsWithClock(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int, *testClock) {
	t.Helper()
	tmpDir := t.TempDir()
	clock := &testClock{now: time.Date(2021, time.December, 21, 11, 23, 45, 0, time.UTC)}

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.ResolvePaths(tmpDir)

	services, err := service.NewServicesWithConfig(filepath.Join(tmpDir, config.ConfigFile), cfg, clock.Now)
	if err != nil {
		t.Fatalf("failed to create services: %v", err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
	}

	return deps, stdout, stderr, &exitCode, clock
}
