package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Record list
	RecordSelected lipgloss.Style
	RecordTime     lipgloss.Style
	RecordTask     lipgloss.Style
	RecordDuration lipgloss.Style

	// Timer
	TimerRunning lipgloss.Style
	TimerStopped lipgloss.Style
	TimerElapsed lipgloss.Style

	// Label/value pairs on the timer and config views
	Label lipgloss.Style
	Value lipgloss.Style

	Input  lipgloss.Style
	Dialog lipgloss.Style

	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors.
type palette struct {
	primary   lipgloss.TerminalColor
	secondary lipgloss.TerminalColor
	accent    lipgloss.TerminalColor
	muted     lipgloss.TerminalColor
	success   lipgloss.TerminalColor
	warning   lipgloss.TerminalColor
	err       lipgloss.TerminalColor
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
	highlight lipgloss.TerminalColor
}

// DefaultStyles returns the styles used when no theme registry is available
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:   lipgloss.Color("99"),
		secondary: lipgloss.Color("39"),
		accent:    lipgloss.Color("212"),
		muted:     lipgloss.Color("240"),
		success:   lipgloss.Color("82"),
		warning:   lipgloss.Color("214"),
		err:       lipgloss.Color("196"),
		fg:        lipgloss.Color("252"),
		bg:        lipgloss.Color("236"),
		highlight: lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry builds styles from the current tint of r.
// Purple is the primary color, cyan marks times and keys, bright purple
// marks durations and bright black is used for muted text.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:   r.Purple(),
		secondary: r.Cyan(),
		accent:    r.BrightPurple(),
		muted:     r.BrightBlack(),
		success:   r.Green(),
		warning:   r.Yellow(),
		err:       r.Red(),
		fg:        r.Fg(),
		bg:        r.Bg(),
		highlight: r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		RecordSelected: lipgloss.NewStyle().
			Background(p.highlight).
			Bold(true),
		RecordTime: lipgloss.NewStyle().
			Foreground(p.secondary).
			Width(13),
		RecordTask: lipgloss.NewStyle().
			Foreground(p.fg),
		RecordDuration: lipgloss.NewStyle().
			Foreground(p.accent).
			Width(10).
			Align(lipgloss.Right),

		TimerRunning: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		TimerStopped: lipgloss.NewStyle().
			Foreground(p.muted),
		TimerElapsed: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(14),
		Value: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),

		Muted:   lipgloss.NewStyle().Foreground(p.muted),
		Error:   lipgloss.NewStyle().Foreground(p.err),
		Warning: lipgloss.NewStyle().Foreground(p.warning),
		Success: lipgloss.NewStyle().Foreground(p.success),
	}
}
