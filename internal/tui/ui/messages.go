package ui

// ThemeChangeRequestMsg asks the root model to switch themes.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// FilesChangedMsg is sent when the status file or the log directory
// changed on disk, e.g. because `tiem start` ran in another terminal.
type FilesChangedMsg struct{}

// StatusMsg reports the outcome of an action in the status line of a view.
type StatusMsg struct {
	Text  string
	IsErr bool
}
