package views

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tiem/internal/config"
	"github.com/xolan/tiem/internal/service"
	"github.com/xolan/tiem/internal/tui/ui"
	"github.com/xolan/tiem/internal/worklog"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func setupTestServices(t *testing.T) (*service.Services, *testClock) {
	t.Helper()
	tmpDir := t.TempDir()
	clock := &testClock{now: time.Date(2021, time.December, 21, 11, 23, 45, 0, time.UTC)}

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.StatusFile = filepath.Join(tmpDir, "status.json")
	cfg.LogDir = filepath.Join(tmpDir, "log")

	services, err := service.NewServicesWithConfig(filepath.Join(tmpDir, "config.toml"), cfg, clock.Now)
	if err != nil {
		t.Fatalf("NewServicesWithConfig() returned unexpected error: %v", err)
	}
	return services, clock
}

func writeDay(t *testing.T, services *service.Services, day time.Time, content string) {
	t.Helper()
	path := filepath.Join(services.Log.Dir(), day.Format(worklog.DateLayout)+".log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// execTimer runs cmd and feeds its message back into the model.
func execTimer(t *testing.T, m TimerModel, cmd tea.Cmd) TimerModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m, _ = m.Update(cmd())
	return m
}

func TestRenderRecordList(t *testing.T) {
	styles := ui.DefaultStyles()
	records := []worklog.Record{
		{Started: worklog.TimeOfDay{Hour: 9}, Ended: worklog.TimeOfDay{Hour: 10, Minute: 30}, Task: "standup"},
		{Started: worklog.TimeOfDay{Hour: 11}, Ended: worklog.TimeOfDay{Hour: 11, Minute: 20}, Task: "code review"},
	}

	output := RenderRecordList(records, styles, RecordRenderOptions{Width: 80, Cursor: -1})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), output)
	}
	for _, want := range []string{"09:00-10:30", "standup", "1h 30m", "11:00-11:20", "code review", "20m"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got %q", want, output)
		}
	}
}

func TestRenderRecordList_Empty(t *testing.T) {
	if got := RenderRecordList(nil, ui.DefaultStyles(), RecordRenderOptions{}); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRenderRecordList_TruncatesLongTasks(t *testing.T) {
	records := []worklog.Record{
		{Started: worklog.TimeOfDay{Hour: 9}, Ended: worklog.TimeOfDay{Hour: 10}, Task: strings.Repeat("x", 100)},
	}

	output := RenderRecordList(records, ui.DefaultStyles(), RecordRenderOptions{Width: 40, Cursor: -1})

	if strings.Contains(output, strings.Repeat("x", 30)) {
		t.Errorf("expected task to be truncated, got %q", output)
	}
	if !strings.Contains(output, "…") {
		t.Errorf("expected ellipsis, got %q", output)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"too long", 4, "too…"},
		{"über", 3, "üb…"},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.in, tt.width, got, tt.expected)
		}
	}
}

func TestTimerModel_View_Stopped(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m = execTimer(t, m, m.loadStatus(""))

	view := m.View()
	if !strings.Contains(view, "Stopped") {
		t.Errorf("expected 'Stopped' in view, got %q", view)
	}
}

func TestTimerModel_View_Loading(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	if !strings.Contains(m.View(), "Loading") {
		t.Errorf("expected 'Loading' before the first status, got %q", m.View())
	}
}

func TestTimerModel_StartStop(t *testing.T) {
	services, clock := setupTestServices(t)
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m = execTimer(t, m, m.loadStatus(""))

	m, _ = m.Update(runes("s"))
	if !m.IsInputMode() {
		t.Fatal("expected input mode after 's'")
	}
	m.input.SetValue("write report")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsInputMode() {
		t.Error("expected input mode to close on enter")
	}
	m = execTimer(t, m, cmd)

	if !m.running() {
		t.Fatal("expected the timer to be running")
	}
	view := m.View()
	for _, want := range []string{"Running", "write report", "today at 11:23", "Started: write report"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got %q", want, view)
		}
	}

	clock.now = clock.now.Add(45 * time.Minute)
	m, cmd = m.Update(runes("x"))
	m = execTimer(t, m, cmd)

	if m.running() {
		t.Error("expected the timer to be stopped")
	}
	if !strings.Contains(m.View(), "Logged: 11:23-12:08  write report (45m)") {
		t.Errorf("expected logged record in view, got %q", m.View())
	}
}

func TestTimerModel_SwitchWhileRunning(t *testing.T) {
	services, clock := setupTestServices(t)
	if _, _, err := services.Timer.Start("standup"); err != nil {
		t.Fatal(err)
	}
	clock.now = clock.now.Add(15 * time.Minute)

	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m = execTimer(t, m, m.loadStatus(""))

	m, _ = m.Update(runes("s"))
	if !strings.Contains(m.View(), "Switch from standup") {
		t.Errorf("expected switch prompt, got %q", m.View())
	}
	m.input.SetValue("code review")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = execTimer(t, m, cmd)

	view := m.View()
	if !strings.Contains(view, "Logged: 11:23-11:38  standup (15m)") {
		t.Errorf("expected previous task to be logged, got %q", view)
	}
	if m.status.Status.Task != "code review" {
		t.Errorf("expected 'code review' to be running, got %q", m.status.Status.Task)
	}
}

func TestTimerModel_Cancel(t *testing.T) {
	services, _ := setupTestServices(t)
	if _, _, err := services.Timer.Start("distraction"); err != nil {
		t.Fatal(err)
	}
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m = execTimer(t, m, m.loadStatus(""))

	m, cmd := m.Update(runes("c"))
	m = execTimer(t, m, cmd)

	if m.running() {
		t.Error("expected the timer to be stopped")
	}
	if !strings.Contains(m.View(), "Cancelled: distraction (not logged)") {
		t.Errorf("expected cancel note, got %q", m.View())
	}
	day, err := services.Log.Today()
	if err != nil {
		t.Fatal(err)
	}
	if len(day.Records) != 0 {
		t.Errorf("cancel should not log, got %+v", day.Records)
	}
}

func TestTimerModel_StopWhenStoppedIsNoop(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m = execTimer(t, m, m.loadStatus(""))

	if _, cmd := m.Update(runes("x")); cmd != nil {
		t.Error("expected no command when stopping an idle timer")
	}
	if _, cmd := m.Update(runes("c")); cmd != nil {
		t.Error("expected no command when cancelling an idle timer")
	}
}

func TestTimerModel_EscapeLeavesInput(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(runes("s"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.IsInputMode() {
		t.Error("expected esc to leave input mode")
	}
}

func TestTimerModel_EmptyTaskIgnored(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(runes("s"))
	m.input.SetValue("   ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no command for an empty task")
	}
	if !m.IsInputMode() {
		t.Error("expected to stay in input mode")
	}
}

func TestTimerModel_Tick(t *testing.T) {
	services, clock := setupTestServices(t)
	if _, _, err := services.Timer.Start("deep work"); err != nil {
		t.Fatal(err)
	}
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m = execTimer(t, m, m.loadStatus(""))

	clock.now = clock.now.Add(83 * time.Minute)
	m, cmd := m.Update(timerTickMsg(clock.now))

	if cmd == nil {
		t.Error("expected the tick to be rescheduled")
	}
	if !strings.Contains(m.View(), "1h 23m") {
		t.Errorf("expected elapsed time to advance, got %q", m.View())
	}
}

func TestTimerModel_FilesChanged(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m = execTimer(t, m, m.loadStatus(""))

	// started from another terminal
	if _, _, err := services.Timer.Start("elsewhere"); err != nil {
		t.Fatal(err)
	}
	m, cmd := m.Update(ui.FilesChangedMsg{})
	m = execTimer(t, m, cmd)

	if !strings.Contains(m.View(), "elsewhere") {
		t.Errorf("expected reloaded status, got %q", m.View())
	}
}

func TestTimerModel_CorruptStatus(t *testing.T) {
	services, _ := setupTestServices(t)
	if err := os.WriteFile(services.Timer.StatusPath(), []byte(`{"kind":"Paused"}`), 0644); err != nil {
		t.Fatal(err)
	}
	m := NewTimerModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m = execTimer(t, m, m.loadStatus(""))

	if !strings.Contains(m.View(), "Error:") {
		t.Errorf("expected error in view, got %q", m.View())
	}
}

func TestLogModel_Today(t *testing.T) {
	services, clock := setupTestServices(t)
	writeDay(t, services, clock.now, "09:00\t10:30\tstandup\n11:00\t11:20\tcode review\n")
	m := NewLogModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 20)

	m, _ = m.Update(m.Init()())

	view := m.View()
	for _, want := range []string{"Tue, Dec 21, 2021", "standup", "code review", "Total: 1h 50m (2 records)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got %q", want, view)
		}
	}
}

func TestLogModel_Empty(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewLogModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(m.Init()())

	if !strings.Contains(m.View(), "No records") {
		t.Errorf("expected 'No records', got %q", m.View())
	}
}

func TestLogModel_DayNavigation(t *testing.T) {
	services, clock := setupTestServices(t)
	writeDay(t, services, clock.now.AddDate(0, 0, -1), "14:00\t15:00\tyesterday's work\n")
	m := NewLogModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.Init()())

	m, cmd := m.Update(runes("h"))
	m, _ = m.Update(cmd())
	if !strings.Contains(m.View(), "Mon, Dec 20, 2021") || !strings.Contains(m.View(), "yesterday's work") {
		t.Errorf("expected yesterday's log, got %q", m.View())
	}

	m, cmd = m.Update(runes("l"))
	m, _ = m.Update(cmd())
	if !strings.Contains(m.View(), "Tue, Dec 21, 2021") {
		t.Errorf("expected today's log, got %q", m.View())
	}

	if _, cmd := m.Update(runes("l")); cmd != nil {
		t.Error("expected no navigation past today")
	}

	m, _ = m.Update(runes("h"))
	m, _ = m.Update(runes("h"))
	m, cmd = m.Update(runes("t"))
	m, _ = m.Update(cmd())
	if m.offset != 0 {
		t.Errorf("expected 't' to return to today, offset = %d", m.offset)
	}
}

func TestLogModel_CursorBounds(t *testing.T) {
	services, clock := setupTestServices(t)
	writeDay(t, services, clock.now, "09:00\t10:00\ta\n10:00\t11:00\tb\n")
	m := NewLogModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(runes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, expected 1", m.cursor)
	}
}

func TestLogModel_MalformedFile(t *testing.T) {
	services, clock := setupTestServices(t)
	writeDay(t, services, clock.now, "not a record\n")
	m := NewLogModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(m.Init()())

	view := m.View()
	if !strings.Contains(view, "Error:") {
		t.Errorf("expected error in view, got %q", view)
	}
	if !strings.Contains(view, "tiem validate") {
		t.Errorf("expected validate hint, got %q", view)
	}
}

func TestLogModel_FilesChanged(t *testing.T) {
	services, clock := setupTestServices(t)
	m := NewLogModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.Init()())

	writeDay(t, services, clock.now, "09:00\t09:15\tnew record\n")
	m, cmd := m.Update(ui.FilesChangedMsg{})
	m, _ = m.Update(cmd())

	if !strings.Contains(m.View(), "new record") {
		t.Errorf("expected reloaded log, got %q", m.View())
	}
}

func TestConfigModel_View(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewConfigModel(services, ui.NewThemeProvider(""), ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 20)

	m, _ = m.Update(m.Init()())

	view := m.View()
	for _, want := range []string{"Configuration", "status_file", services.Timer.StatusPath(), "log_dir", "UTC", "text", "dracula", "Using defaults"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got %q", want, view)
		}
	}
}

func TestConfigModel_ThemeSelector(t *testing.T) {
	services, _ := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	m := NewConfigModel(services, tp, ui.DefaultStyles(), ui.DefaultKeyMap())
	start := m.themeCursor

	m, _ = m.Update(runes("t"))
	if !m.IsSelecting() {
		t.Fatal("expected the theme selector to open")
	}
	if !strings.Contains(m.View(), "dracula (current)") {
		t.Errorf("expected current theme marker, got %q", m.View())
	}

	m, _ = m.Update(runes("j"))
	if m.themeCursor != start+1 {
		t.Errorf("cursor = %d, expected %d", m.themeCursor, start+1)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsSelecting() {
		t.Error("expected the selector to close on enter")
	}
	req, ok := cmd().(ui.ThemeChangeRequestMsg)
	if !ok {
		t.Fatalf("expected ThemeChangeRequestMsg, got %T", cmd())
	}
	if req.ThemeName != m.themes[start+1] {
		t.Errorf("requested %q, expected %q", req.ThemeName, m.themes[start+1])
	}
}

func TestConfigModel_ThemeSelectorEscape(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewConfigModel(services, ui.NewThemeProvider(""), ui.DefaultStyles(), ui.DefaultKeyMap())
	start := m.themeCursor

	m, _ = m.Update(runes("t"))
	m, _ = m.Update(runes("j"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if cmd != nil {
		t.Error("expected no theme change on esc")
	}
	if m.IsSelecting() || m.themeCursor != start {
		t.Errorf("expected the selector to close and reset, cursor = %d", m.themeCursor)
	}
}

func TestConfigModel_ThemeChanged(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewConfigModel(services, ui.NewThemeProvider(""), ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(ui.ThemeChangedMsg{ThemeName: "nord", Styles: ui.DefaultStyles()})

	if m.themeName != "nord" || m.themes[m.themeCursor] != "nord" {
		t.Errorf("expected nord to be current, got %q", m.themeName)
	}
}

func TestConfigModel_StatusMsg(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewConfigModel(services, ui.NewThemeProvider(""), ui.DefaultStyles(), ui.DefaultKeyMap())

	m, cmd := m.Update(ui.StatusMsg{Text: "Failed to save theme", IsErr: true})
	if cmd == nil {
		t.Error("expected the config to be reloaded")
	}
	if !strings.Contains(m.View(), "Failed to save theme") {
		t.Errorf("expected status in view, got %q", m.View())
	}
}
