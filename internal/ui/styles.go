package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is the palette for status lines and the detail view.
type Theme struct {
	Primary   lipgloss.Color // counts
	Secondary lipgloss.Color // paragraph headings, pane border
	Warning   lipgloss.Color // kinsoku reasons in the detail view
	Error     lipgloss.Color // failed saves in the live editor
	Muted     lipgloss.Color // break reasons, placeholder
	Text      lipgloss.Color
}

// DefaultTheme is gruvbox dark.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#b8bb26"),
		Secondary: lipgloss.Color("#83a598"),
		Warning:   lipgloss.Color("#fabd2f"),
		Error:     lipgloss.Color("#fb4934"),
		Muted:     lipgloss.Color("#928374"),
		Text:      lipgloss.Color("#ebdbb2"),
	}
}

// ThemeConfig holds the theme.* color overrides from the config file.
// Empty fields keep the default.
type ThemeConfig struct {
	Primary   string
	Secondary string
	Warning   string
	Error     string
	Muted     string
	Text      string
}

// Theme returns the default theme with c's overrides applied.
func (c ThemeConfig) Theme() *Theme {
	t := DefaultTheme()
	for _, o := range []struct {
		dst *lipgloss.Color
		val string
	}{
		{&t.Primary, c.Primary},
		{&t.Secondary, c.Secondary},
		{&t.Warning, c.Warning},
		{&t.Error, c.Error},
		{&t.Muted, c.Muted},
		{&t.Text, c.Text},
	} {
		if o.val != "" {
			*o.dst = lipgloss.Color(o.val)
		}
	}
	return t
}

var currentTheme = DefaultTheme()

// InitTheme makes cfg the active theme.
func InitTheme(cfg ThemeConfig) {
	currentTheme = cfg.Theme()
}

// InitColor drops all styling when color is disabled by flag or NO_COLOR.
func InitColor(disabled bool) {
	if disabled || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Styles are the lipgloss styles of the live editor.
type Styles struct {
	Placeholder lipgloss.Style
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
	Pane        lipgloss.Style
}

// NewStyles builds styles from t on the default renderer, so InitColor
// applies to them.
func NewStyles(t *Theme) *Styles {
	return &Styles{
		Placeholder: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		StatusBar:   lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1),
		StatusError: lipgloss.NewStyle().Foreground(t.Error).Bold(true).Padding(0, 1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Secondary).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles for the current theme.
func DefaultStyles() *Styles {
	return NewStyles(currentTheme)
}
