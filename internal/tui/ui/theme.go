package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is used when the config names no theme or an unknown one
const DefaultTheme = "dracula"

// ThemeProvider holds the bubbletint registry the styles are built from
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider creates a ThemeProvider set to name, or DefaultTheme
// when name is empty or unknown.
func NewThemeProvider(name string) *ThemeProvider {
	tints := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range tints {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(tints) > 0 {
		fallback = tints[0]
	}

	registry := tint.NewRegistry(fallback, tints...)
	if name != "" {
		registry.SetTintID(name)
	}
	return &ThemeProvider{registry: registry}
}

// SetTheme switches to name and reports whether it exists
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// CurrentName returns the ID of the current theme
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human readable name of the current theme
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns every theme ID, sorted
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns styles for the current theme
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
