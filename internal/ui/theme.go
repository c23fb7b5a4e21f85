package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for one appearance mode.
type Theme struct {
	Name string

	Text      string
	Muted     string
	Accent    string
	Highlight string
	Danger    string
	Success   string
	StatusBg  string
}

// Dark is the default theme.
func Dark() Theme {
	return Theme{
		Name:      "dark",
		Text:      "255",
		Muted:     "241",
		Accent:    "62",
		Highlight: "212",
		Danger:    "196",
		Success:   "78",
		StatusBg:  "236",
	}
}

// Light mirrors Dark with colors chosen for light terminal backgrounds.
func Light() Theme {
	return Theme{
		Name:      "light",
		Text:      "235",
		Muted:     "245",
		Accent:    "57",
		Highlight: "162",
		Danger:    "124",
		Success:   "28",
		StatusBg:  "253",
	}
}

// ThemeByName returns the named theme, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}

// Styles holds the Lipgloss styles derived from a theme.
type Styles struct {
	QuoteText  lipgloss.Style
	QuoteMark  lipgloss.Style
	Author     lipgloss.Style
	Favorite   lipgloss.Style
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusText lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
	ListTitle  lipgloss.Style
	ListItem   lipgloss.Style
	ListCursor lipgloss.Style
}

// Styles returns the Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		QuoteText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Italic(true).
			Padding(0, 2),

		QuoteMark: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Author: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Highlight)).
			Padding(0, 2),

		Favorite: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.StatusBg)).
			Padding(0, 1),

		StatusKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Highlight)).
			Background(lipgloss.Color(t.StatusBg)).
			Bold(true),

		StatusText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Background(lipgloss.Color(t.StatusBg)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(1, 2),

		ListTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		ListItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 2),

		ListCursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),
	}
}
