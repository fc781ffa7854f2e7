package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the palette and derived lipgloss styles.
type Theme struct {
	Accent  string
	Text    string
	Muted   string
	Faint   string
	Success string
	Danger  string
	Surface string
}

// Styles are the prebuilt lipgloss styles used by the views.
type Styles struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Success      lipgloss.Style
	Error        lipgloss.Style
	CountdownBox lipgloss.Style
	CountdownNum lipgloss.Style
	Label        lipgloss.Style
	Tile         lipgloss.Style
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	TableHeader  lipgloss.Style
	TableRow     lipgloss.Style
	TableRowAlt  lipgloss.Style
	SelectedRow  lipgloss.Style
	StatusBar    lipgloss.Style
	Help         lipgloss.Style
}

// DefaultTheme mirrors the warm palette of the original invitation.
func DefaultTheme() Theme {
	return Theme{
		Accent:  "#B08968",
		Text:    "#EDE0D4",
		Muted:   "#9C8E80",
		Faint:   "#5C544C",
		Success: "#7D9D72",
		Danger:  "#C06E52",
		Surface: "#2B2622",
	}
}

// Styles derives the style set for this theme.
func (t Theme) Styles() Styles {
	accent := lipgloss.Color(t.Accent)
	text := lipgloss.Color(t.Text)
	muted := lipgloss.Color(t.Muted)
	surface := lipgloss.Color(t.Surface)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(text),

		Text: lipgloss.NewStyle().
			Foreground(text),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		CountdownBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			Align(lipgloss.Center),

		CountdownNum: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(muted),

		Tile: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			Align(lipgloss.Center),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Background(surface).
			Padding(1, 3),

		ModalTitle: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Align(lipgloss.Center),

		TableHeader: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		TableRow: lipgloss.NewStyle().
			Foreground(text),

		TableRowAlt: lipgloss.NewStyle().
			Foreground(muted),

		SelectedRow: lipgloss.NewStyle().
			Foreground(surface).
			Background(accent),

		StatusBar: lipgloss.NewStyle().
			Foreground(muted),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),
	}
}

// fadeColor maps a carousel opacity to a foreground color, so the tile
// caption visibly dims and brightens as the scheduler transitions.
func (t Theme) fadeColor(opacity float64) lipgloss.Color {
	switch {
	case opacity >= 0.75:
		return lipgloss.Color(t.Text)
	case opacity >= 0.5:
		return lipgloss.Color(t.Muted)
	case opacity >= 0.25:
		return lipgloss.Color(t.Faint)
	default:
		return lipgloss.Color(t.Surface)
	}
}
