package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tiem/internal/cli"
	"github.com/xolan/tiem/internal/service"
	"github.com/xolan/tiem/internal/tui/ui"
	"github.com/xolan/tiem/internal/worklog"
)

// LogModel is the model for the daily log view
type LogModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	cursor int
	offset int // days back from today
	day    *service.DayLog
	err    error
}

// NewLogModel creates a new log view model showing today
func NewLogModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) LogModel {
	return LogModel{
		services: services,
		styles:   styles,
		keys:     keys,
	}
}

type dayLoadedMsg struct {
	day *service.DayLog
	err error
}

// Init implements tea.Model
func (m LogModel) Init() tea.Cmd {
	return m.loadDay()
}

// Refresh reloads the day being shown
func (m LogModel) Refresh() tea.Cmd {
	return m.loadDay()
}

// Update implements tea.Model
func (m LogModel) Update(msg tea.Msg) (LogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.day != nil && m.cursor < len(m.day.Records)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Left):
			m.offset++
			m.cursor = 0
			return m, m.loadDay()
		case key.Matches(msg, m.keys.Right):
			if m.offset > 0 {
				m.offset--
				m.cursor = 0
				return m, m.loadDay()
			}
		case key.Matches(msg, m.keys.Today):
			m.offset = 0
			m.cursor = 0
			return m, m.loadDay()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadDay()
		}
		return m, nil

	case dayLoadedMsg:
		m.err = msg.err
		m.day = msg.day
		if m.day != nil && m.cursor >= len(m.day.Records) {
			m.cursor = max(0, len(m.day.Records)-1)
		}
		return m, nil

	case ui.FilesChangedMsg:
		return m, m.loadDay()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

// View implements tea.Model
func (m LogModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Log for " + cli.FormatDayForDisplay(m.date())))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		var fe *worklog.FormatError
		if errors.As(m.err, &fe) {
			b.WriteString("\n\n")
			b.WriteString(m.styles.Muted.Render("Run 'tiem validate' to list every malformed line"))
		}
		return b.String()
	}

	if m.day == nil {
		b.WriteString(m.styles.Muted.Render("Loading..."))
		return b.String()
	}

	if len(m.day.Records) == 0 {
		b.WriteString(m.styles.Muted.Render("No records"))
		return b.String()
	}

	b.WriteString(RenderRecordList(m.day.Records, m.styles, RecordRenderOptions{
		Width:  m.width,
		Cursor: m.cursor,
	}))
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 1))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: %s (%d %s)",
		cli.FormatDuration(m.day.TotalMinutes),
		len(m.day.Records),
		cli.Pluralize("record", len(m.day.Records)))

	return b.String()
}

// SetSize sets the view dimensions
func (m *LogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// date returns the day being shown
func (m LogModel) date() time.Time {
	return m.services.Log.Now().AddDate(0, 0, -m.offset)
}

func (m LogModel) loadDay() tea.Cmd {
	date := m.date()
	return func() tea.Msg {
		day, err := m.services.Log.Day(date)
		return dayLoadedMsg{day: day, err: err}
	}
}
