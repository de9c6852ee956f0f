// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the viewer.
type Theme struct {
	// Accent colors headers and the focused pane border.
	Accent lipgloss.Color

	// Dimmed colors secondary text: timestamps, help line, the
	// unfocused pane border.
	Dimmed lipgloss.Color

	// Selection is the background of the selected list row.
	Selection lipgloss.Color

	// Open and Resolved color the status column by lifecycle.
	Open     lipgloss.Color
	Resolved lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal palette.
var DefaultTheme = Theme{
	Accent:    lipgloss.Color("39"),  // bright blue
	Dimmed:    lipgloss.Color("241"), // gray
	Selection: lipgloss.Color("236"), // near-black highlight
	Open:      lipgloss.Color("214"), // amber
	Resolved:  lipgloss.Color("35"),  // green
}

// styles are the lipgloss styles derived from a Theme once at startup.
type styles struct {
	header     lipgloss.Style
	selected   lipgloss.Style
	dimmed     lipgloss.Style
	statusOpen lipgloss.Style
	statusDone lipgloss.Style
	focused    lipgloss.Style
	blurred    lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		header:     lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		selected:   lipgloss.NewStyle().Background(theme.Selection).Bold(true),
		dimmed:     lipgloss.NewStyle().Foreground(theme.Dimmed),
		statusOpen: lipgloss.NewStyle().Foreground(theme.Open),
		statusDone: lipgloss.NewStyle().Foreground(theme.Resolved),
		focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent),
		blurred: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Dimmed),
	}
}
