// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fermitools/snow/lib/ticket"
)

// focus identifies which pane receives navigation keys.
type focus int

const (
	focusList focus = iota
	focusDetail
	focusFilter
)

// Model is the bubbletea model for the viewer.
type Model struct {
	tickets []ticket.Ticket
	visible []int // indexes into tickets after filtering

	cursor int
	focus  focus
	keys   KeyMap
	styles styles

	filter textinput.Model
	detail viewport.Model

	width  int
	height int
	ready  bool
}

// New creates a viewer over a pre-fetched ticket slice.
func New(tickets []ticket.Ticket, theme Theme) Model {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"

	model := Model{
		tickets: tickets,
		keys:    DefaultKeyMap,
		styles:  newStyles(theme),
		filter:  filter,
	}
	model.applyFilter()
	return model
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.detail = viewport.New(m.detailWidth(), m.paneHeight())
		m.detail.SetContent(m.detailContent())
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if m.focus == focusFilter {
			return m.updateFilter(message)
		}
		return m.updateNavigation(message)
	}
	return m, nil
}

// updateFilter handles keys while the filter line is being edited.
func (m Model) updateFilter(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.ClearFilter):
		m.filter.SetValue("")
		m.filter.Blur()
		m.focus = focusList
		m.applyFilter()
		return m, nil
	case message.Type == tea.KeyEnter:
		m.filter.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(message)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateNavigation(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(message, m.keys.Filter):
		m.focus = focusFilter
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(message, m.keys.ClearFilter):
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil

	case key.Matches(message, m.keys.FocusToggle):
		if m.focus == focusList {
			m.focus = focusDetail
		} else {
			m.focus = focusList
		}
		return m, nil
	}

	if m.focus == focusDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(message)
		return m, cmd
	}

	switch {
	case key.Matches(message, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(message, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(message, m.keys.Home):
		m.setCursor(0)
	case key.Matches(message, m.keys.End):
		m.setCursor(len(m.visible) - 1)
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) { m.setCursor(m.cursor + delta) }

func (m *Model) setCursor(position int) {
	if position < 0 {
		position = 0
	}
	if position >= len(m.visible) {
		position = len(m.visible) - 1
	}
	if position == m.cursor {
		return
	}
	m.cursor = position
	m.refreshDetail()
}

// applyFilter recomputes the visible set from the filter text. The
// match is a case-insensitive substring check against the number,
// summary, assignee, and group.
func (m *Model) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, tk := range m.tickets {
		if needle == "" || ticketMatches(tk, needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.refreshDetail()
}

func ticketMatches(tk ticket.Ticket, needle string) bool {
	for _, haystack := range []string{
		tk.Number(), tk.Summary(), tk.AssignedTo(), tk.AssignmentGroup(), tk.Status(),
	} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

// Selected returns the ticket under the cursor, if any.
func (m Model) Selected() (ticket.Ticket, bool) {
	if len(m.visible) == 0 {
		return ticket.Ticket{}, false
	}
	return m.tickets[m.visible[m.cursor]], true
}

func (m *Model) refreshDetail() {
	if m.ready {
		m.detail.SetContent(m.detailContent())
		m.detail.GotoTop()
	}
}

// detailContent renders the selected ticket's report for the detail
// pane.
func (m Model) detailContent() string {
	selected, ok := m.Selected()
	if !ok {
		return "no matching tickets"
	}
	var content strings.Builder
	if err := ticket.WriteReport(&content, selected, nil); err != nil {
		return err.Error()
	}
	return content.String()
}

func (m Model) listWidth() int   { return m.width * 2 / 5 }
func (m Model) detailWidth() int { return m.width - m.listWidth() - 4 }

// paneHeight leaves room for the filter line and the help line.
func (m Model) paneHeight() int { return max(m.height-4, 3) }

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	listPane := m.renderList()
	detailPane := m.detail.View()

	listStyle, detailStyle := m.styles.blurred, m.styles.blurred
	if m.focus == focusDetail {
		detailStyle = m.styles.focused
	} else {
		listStyle = m.styles.focused
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Width(m.listWidth()).Height(m.paneHeight()).Render(listPane),
		detailStyle.Width(m.detailWidth()).Height(m.paneHeight()).Render(detailPane),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.filter.View(),
		panes,
		m.styles.dimmed.Render(m.helpLine()),
	)
}

func (m Model) renderList() string {
	header := m.styles.header.Render(fmt.Sprintf("TICKETS %d/%d", len(m.visible), len(m.tickets)))
	if len(m.visible) == 0 {
		return header + "\n" + m.styles.dimmed.Render("no matching tickets")
	}

	// The header takes the pane's first row.
	height := max(m.paneHeight()-1, 1)
	first := 0
	if m.cursor >= height {
		first = m.cursor - height + 1
	}

	rows := []string{header}
	for row := first; row < len(m.visible) && row < first+height; row++ {
		rows = append(rows, m.renderRow(row))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRow(row int) string {
	tk := m.tickets[m.visible[row]]

	status := m.styles.statusOpen
	if tk.IsResolved() {
		status = m.styles.statusDone
	}

	line := tk.Number() + " " + status.Render(tk.Status()) + " " + tk.Summary()
	if lipgloss.Width(line) > m.listWidth() {
		line = truncateANSI(line, m.listWidth())
	}
	if row == m.cursor {
		return m.styles.selected.Render(line)
	}
	return line
}

func (m Model) helpLine() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.FocusToggle, m.keys.Filter, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ·  ")
}

// truncateANSI trims a styled line to a display width. lipgloss
// measures display cells; trimming rune by rune keeps escape
// sequences intact enough for list rows (styles there wrap whole
// segments, never split mid-sequence).
func truncateANSI(line string, width int) string {
	runes := []rune(line)
	for lipgloss.Width(string(runes)) > width && len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
