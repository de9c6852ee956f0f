// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer's key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	FocusToggle key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the built-in binding set: vim-style movement
// alongside arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
