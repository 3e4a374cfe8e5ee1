package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tiem/internal/config"
	"github.com/xolan/tiem/internal/service"
	"github.com/xolan/tiem/internal/tui/ui"
)

// maxVisibleThemes is the height of the theme selector
const maxVisibleThemes = 10

// ConfigModel is the model for the config view
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	themeName string
	status    ui.StatusMsg

	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeName:     themeProvider.CurrentName(),
	}
	m.resetCursor()
	return m
}

type configLoadedMsg struct {
	config config.Config
	path   string
	exists bool
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// Refresh reloads the config
func (m ConfigModel) Refresh() tea.Cmd {
	return m.loadConfig()
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Themes):
			m.selectingTheme = true
			m.status = ui.StatusMsg{}
			m.updateThemeOffset()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadConfig()
		}

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.resetCursor()

	case ui.StatusMsg:
		m.status = msg
		return m, m.loadConfig()
	}
	return m, nil
}

func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		if len(m.themes) == 0 {
			return m, nil
		}
		name := m.themes[m.themeCursor]
		return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: name} }
	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.resetCursor()
	}
	return m, nil
}

// resetCursor moves the selector cursor onto the current theme
func (m *ConfigModel) resetCursor() {
	for i, t := range m.themes {
		if t == m.themeName {
			m.themeCursor = i
			break
		}
	}
	m.updateThemeOffset()
}

// updateThemeOffset scrolls the selector so the cursor stays visible
func (m *ConfigModel) updateThemeOffset() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	b.WriteString(m.line("config file", m.path))
	b.WriteString(m.styles.Label.Render("status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 1))))
	b.WriteString("\n\n")

	b.WriteString(m.line("status_file", m.services.Timer.StatusPath()))
	b.WriteString(m.line("log_dir", m.services.Log.Dir()))
	b.WriteString(m.line("timezone", m.config.Timezone))
	b.WriteString(m.line("log_format", m.config.LogFormat))

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
		return b.String()
	}

	b.WriteString(m.line("theme", m.themeName))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Press Enter or 't' to change theme"))
	if m.status.Text != "" {
		b.WriteString("\n\n")
		if m.status.IsErr {
			b.WriteString(m.styles.Error.Render(m.status.Text))
		} else {
			b.WriteString(m.styles.Success.Render(m.status.Text))
		}
	}
	return b.String()
}

func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.line("theme", "select a theme"))
	b.WriteString("\n")

	end := min(m.themeOffset+maxVisibleThemes, len(m.themes))
	if m.themeOffset > 0 {
		b.WriteString(m.styles.Muted.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}
	for i := m.themeOffset; i < end; i++ {
		name := m.themes[i]
		if name == m.themeName {
			name += " (current)"
		}
		if i == m.themeCursor {
			b.WriteString(m.styles.RecordSelected.Render("▸ " + name))
		} else {
			b.WriteString("  " + m.styles.Value.Render(name))
		}
		b.WriteString("\n")
	}
	if end < len(m.themes) {
		b.WriteString(m.styles.Muted.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsSelecting reports whether the theme selector is open
func (m ConfigModel) IsSelecting() bool {
	return m.selectingTheme
}

func (m ConfigModel) loadConfig() tea.Cmd {
	return func() tea.Msg {
		return configLoadedMsg{
			config: m.services.Config.Get(),
			path:   m.services.Config.GetPath(),
			exists: m.services.Config.Exists(),
		}
	}
}

func (m ConfigModel) line(label, value string) string {
	return m.styles.Label.Render(label+":") + " " + m.styles.Value.Render(value) + "\n"
}
