package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

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

type testEnv struct {
	dir      string
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode int
	clock    *testClock
}

// setupTest installs Deps backed by services in a temp dir and resets the
// package-level flag values between runs.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		dir:    t.TempDir(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		clock:  &testClock{now: time.Date(2021, time.December, 21, 11, 23, 45, 0, time.UTC)},
	}

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.ResolvePaths(env.dir)
	services, err := service.NewServicesWithConfig(filepath.Join(env.dir, config.ConfigFile), cfg, env.clock.Now)
	if err != nil {
		t.Fatalf("failed to create services: %v", err)
	}

	SetDeps(&Deps{
		Stdout:   env.stdout,
		Stderr:   env.stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { env.exitCode = code },
		Services: services,
	})
	resetFlags()
	t.Cleanup(func() {
		ResetDeps()
		resetFlags()
		rootCmd.SetArgs(nil)
	})
	return env
}

func resetFlags() {
	verboseFlag = false
	statusFileFlag = ""
	logDirFlag = ""
	watchFlag = false
	debounceFlag = 200 * time.Millisecond
	dateFlag = ""
	formatFlag = ""
	_ = rootCmd.PersistentFlags().Set("tui", "false")
	if f := rootCmd.Flags().Lookup("version"); f != nil {
		_ = f.Value.Set("false")
	}
}

// run executes the root command with args and returns cobra's error.
func (e *testEnv) run(args ...string) error {
	e.stdout.Reset()
	e.stderr.Reset()
	e.exitCode = 0
	rootCmd.SetArgs(args)
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)
	return rootCmd.Execute()
}
