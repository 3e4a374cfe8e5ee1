package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tiem/internal/cli"
	"github.com/xolan/tiem/internal/service"
	"github.com/xolan/tiem/internal/status"
	"github.com/xolan/tiem/internal/tui/ui"
)

// TimerModel is the model for the timer view
type TimerModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	status *service.TimerStatus
	err    error
	note   string // outcome of the last action

	// task input for starting or switching
	inputMode bool
	input     textinput.Model
}

// NewTimerModel creates a new timer view model
func NewTimerModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TimerModel {
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = 200
	ti.Width = 50

	return TimerModel{
		services: services,
		styles:   styles,
		keys:     keys,
		input:    ti,
	}
}

// timerStatusMsg carries a freshly loaded status and the outcome of the
// action that triggered the reload, if any.
type timerStatusMsg struct {
	status *service.TimerStatus
	note   string
	err    error
}

type timerTickMsg time.Time

// Init implements tea.Model
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(m.loadStatus(""), m.tick())
}

// Refresh reloads the status without rescheduling the tick
func (m TimerModel) Refresh() tea.Cmd {
	return m.loadStatus(m.note)
}

// Update implements tea.Model
func (m TimerModel) Update(msg tea.Msg) (TimerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Start):
			m.inputMode = true
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Stop):
			if m.can(status.EventStop) {
				return m, m.stop()
			}
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			if m.can(status.EventCancel) {
				return m, m.cancel()
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadStatus("")
		}

	case timerStatusMsg:
		m.err = msg.err
		m.note = msg.note
		if msg.status != nil {
			m.status = msg.status
		}
		return m, nil

	case ui.FilesChangedMsg:
		return m, m.loadStatus(m.note)

	case timerTickMsg:
		if m.running() {
			m.status.ElapsedTime = m.status.Status.Elapsed(m.services.Log.Now())
		}
		return m, m.tick()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.inputMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m TimerModel) handleInputMode(msg tea.KeyMsg) (TimerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		task := strings.TrimSpace(m.input.Value())
		if task == "" {
			return m, nil
		}
		m.inputMode = false
		m.input.Blur()
		return m, m.start(task)
	case key.Matches(msg, m.keys.Back):
		m.inputMode = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m TimerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Timer"))
	b.WriteString("\n\n")

	if m.inputMode {
		label := "Start task"
		if m.running() {
			label = "Switch from " + m.status.Status.Task + " to"
		}
		b.WriteString(m.styles.Value.Render(label))
		b.WriteString("\n")
		b.WriteString(m.styles.Input.Render(m.input.View()))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("Enter to start, Esc to cancel"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch {
	case m.status == nil:
		b.WriteString(m.styles.Muted.Render("Loading..."))
	case !m.status.Running:
		b.WriteString(m.styles.TimerStopped.Render("○ Stopped"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("Press 's' to start a task"))
	default:
		st := m.status.Status
		b.WriteString(m.styles.TimerRunning.Render("● Running"))
		b.WriteString("\n\n")
		b.WriteString(m.field("Task:", m.styles.Value.Render(st.Task)))
		b.WriteString(m.field("Started:", m.styles.Value.Render(cli.FormatTimerStartTime(st.Started, m.services.Log.Now()))))
		b.WriteString(m.field("Elapsed:", m.styles.TimerElapsed.Render(cli.FormatElapsedTime(m.status.ElapsedTime))))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Press 's' to switch, 'x' to stop, 'c' to cancel"))
	}

	if m.note != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Success.Render(m.note))
	}
	return b.String()
}

func (m TimerModel) field(label, value string) string {
	return m.styles.Label.Render(label) + " " + value + "\n"
}

// SetSize sets the view dimensions
func (m *TimerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = min(50, max(width-10, 10))
}

// IsInputMode returns true when the view is capturing keyboard input
func (m TimerModel) IsInputMode() bool {
	return m.inputMode
}

func (m TimerModel) running() bool {
	return m.status != nil && m.status.Running
}

// can reports whether event is allowed from the loaded status
func (m TimerModel) can(event string) bool {
	return m.status != nil && status.CanTransition(m.status.Status.Kind, event)
}

func (m TimerModel) loadStatus(note string) tea.Cmd {
	return func() tea.Msg {
		st, err := m.services.Timer.Status()
		return timerStatusMsg{status: st, note: note, err: err}
	}
}

func (m TimerModel) start(task string) tea.Cmd {
	return func() tea.Msg {
		started, closed, err := m.services.Timer.Start(task)
		if err != nil {
			return timerStatusMsg{err: err}
		}
		note := "Started: " + started.Task
		if closed != nil {
			note = "Logged: " + cli.FormatRecord(*closed) + "\n" + note
		}
		return m.loadStatus(note)()
	}
}

func (m TimerModel) stop() tea.Cmd {
	return func() tea.Msg {
		record, _, err := m.services.Timer.Stop()
		if err != nil {
			return timerStatusMsg{err: err}
		}
		return m.loadStatus("Logged: " + cli.FormatRecord(*record))()
	}
}

func (m TimerModel) cancel() tea.Cmd {
	return func() tea.Msg {
		cancelled, err := m.services.Timer.Cancel()
		if err != nil {
			return timerStatusMsg{err: err}
		}
		return m.loadStatus("Cancelled: " + cancelled.Task + " (not logged)")()
	}
}

func (m TimerModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
