// Package tui provides the terminal user interface of tiem.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/tiem/internal/service"
	"github.com/xolan/tiem/internal/tui/ui"
	"github.com/xolan/tiem/internal/tui/views"
	"github.com/xolan/tiem/internal/watch"
)

// Tab represents a view tab
type Tab int

const (
	TabTimer Tab = iota
	TabLog
	TabConfig
)

var tabNames = []string{"Timer", "Log", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	activeTab Tab
	width     int
	height    int
	showHelp  bool

	timerView  views.TimerModel
	logView    views.LogModel
	configView views.ConfigModel

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model using the configured theme
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabTimer,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		timerView:     views.NewTimerModel(services, styles, keys),
		logView:       views.NewLogModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.logView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While a task is being typed every key belongs to the input.
		if m.timerView.IsInputMode() && m.activeTab == TabTimer {
			return m.updateActive(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))
		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))
		case key.Matches(msg, m.keys.Tab1):
			return m.switchTab(TabTimer)
		case key.Matches(msg, m.keys.Tab2):
			return m.switchTab(TabLog)
		case key.Matches(msg, m.keys.Tab3):
			return m.switchTab(TabConfig)
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// tabs and status bar
		contentHeight := m.height - 4
		m.timerView.SetSize(m.width, contentHeight)
		m.logView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		m.styles = m.themeProvider.Styles()
		name := m.themeProvider.CurrentName()
		next, cmd := m.broadcast(ui.ThemeChangedMsg{ThemeName: name, Styles: m.styles})
		return next, tea.Batch(cmd, m.saveTheme(name))
	}

	return m.broadcast(msg)
}

// updateActive passes msg to the active view only
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabTimer:
		m.timerView, cmd = m.timerView.Update(msg)
	case TabLog:
		m.logView, cmd = m.logView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

// broadcast passes msg to every view; each ignores what it does not own
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var timerCmd, logCmd, configCmd tea.Cmd
	m.timerView, timerCmd = m.timerView.Update(msg)
	m.logView, logCmd = m.logView.Update(msg)
	m.configView, configCmd = m.configView.Update(msg)
	return m, tea.Batch(timerCmd, logCmd, configCmd)
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.refreshCurrentView()
}

// refreshCurrentView reloads the data of the active view
func (m Model) refreshCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabTimer:
		return m.timerView.Refresh()
	case TabLog:
		return m.logView.Refresh()
	case TabConfig:
		return m.configView.Refresh()
	}
	return nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabTimer:
		b.WriteString(m.timerView.View())
	case TabLog:
		b.WriteString(m.logView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.styles.App.Render(m.renderHelp())
	}
	return m.styles.App.Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.activeTab == TabTimer && m.timerView.IsInputMode() {
		parts = append(parts,
			m.renderKeyHelp("Enter", "start"),
			m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabTimer:
			parts = append(parts,
				m.renderKeyHelp("s", "start"),
				m.renderKeyHelp("x", "stop"),
				m.renderKeyHelp("c", "cancel"))
		case TabLog:
			parts = append(parts,
				m.renderKeyHelp("h/l", "day"),
				m.renderKeyHelp("t", "today"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}
		parts = append(parts,
			m.renderKeyHelp("1-3", "views"),
			m.renderKeyHelp("?", "help"),
			m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s", m.styles.StatusKey.Render(key), m.styles.StatusHelp.Render(desc))
}

func (m Model) renderHelp() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")
	help.WriteString(m.styles.Label.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  r          Refresh\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n\n")

	switch m.activeTab {
	case TabTimer:
		help.WriteString(m.styles.Label.Render("Timer:"))
		help.WriteString("\n")
		help.WriteString("  s          Start or switch task\n")
		help.WriteString("  x          Stop and log\n")
		help.WriteString("  c          Cancel without logging\n")
	case TabLog:
		help.WriteString(m.styles.Label.Render("Log:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Move up/down\n")
		help.WriteString("  h/l        Previous/next day\n")
		help.WriteString("  t          Today\n")
	case TabConfig:
		help.WriteString(m.styles.Label.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Esc        Close selector\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Muted.Render("Press ? to close"))
	return m.styles.Dialog.Render(help.String())
}

// saveTheme persists the theme and reports the outcome to the config view
func (m Model) saveTheme(name string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.Theme = name
		if err := m.services.Config.Update(cfg); err != nil {
			return ui.StatusMsg{Text: fmt.Sprintf("Failed to save theme: %v", err), IsErr: true}
		}
		return ui.StatusMsg{Text: "Theme saved to " + m.services.Config.GetPath()}
	}
}

// Run starts the TUI and reloads it whenever the status file or the
// daily logs change on disk.
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := watch.NewWatcher(services.Timer.StatusPath(), services.Log.Dir(), 0, func(watch.ChangeEvent) {
		p.Send(ui.FilesChangedMsg{})
	})
	if err != nil {
		slog.Warn("live reload disabled", "error", err)
	} else {
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("file watcher stopped", "error", err)
			}
		}()
	}

	_, err = p.Run()
	return err
}
