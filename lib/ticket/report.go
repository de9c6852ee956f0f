// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fermitools/snow/lib/servicenow"
)

// reportWidth is the wrap column for free-text sections. Reports go to
// terminals and ticket emails; 76 keeps them readable in both.
const reportWidth = 76

// summaryColumn is the truncation width for the summary column of list
// reports.
const summaryColumn = 60

// WriteReport renders the full fixed-width report for one ticket:
// primary information, requestor, assignment, the user-provided
// description, and any journal entries supplied.
func WriteReport(w io.Writer, tk Ticket, journal []servicenow.JournalEntry) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)

	fmt.Fprintln(tw, "Primary Ticket Information")
	writeField(tw, "Number", tk.Number())
	writeField(tw, "Type", tk.Type.String())
	writeField(tw, "Status", tk.Status())
	writeField(tw, "Priority", tk.Priority())
	writeField(tw, "Created", tk.CreatedAt())
	writeField(tw, "Updated", tk.UpdatedAt())
	writeField(tw, "Summary", tk.Summary())

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Requestor Information")
	writeField(tw, "Name", tk.Requestor())
	writeField(tw, "Opened By", tk.Record.Display("opened_by"))

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Assignment Information")
	writeField(tw, "Group", tk.AssignmentGroup())
	writeField(tw, "Assignee", tk.AssignedTo())

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "User-Provided Description")
	description := tk.Description()
	if description == "" {
		description = "(none)"
	}
	writeWrapped(w, description)

	if journal != nil {
		fmt.Fprintln(w)
		writeJournal(w, journal)
	}
	return nil
}

// WriteJournal renders journal entries on their own, for the journal
// subcommand's read path.
func WriteJournal(w io.Writer, journal []servicenow.JournalEntry) error {
	writeJournal(w, journal)
	return nil
}

func writeJournal(w io.Writer, journal []servicenow.JournalEntry) {
	fmt.Fprintln(w, "Journal Entries")
	if len(journal) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for i, entry := range journal {
		kind := "comment"
		if entry.IsWorkNote() {
			kind = "work note"
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "  Entry %d (%s) by %s on %s\n", i+1, kind, entry.CreatedBy, entry.CreatedAt)
		writeWrapped(w, entry.Value)
	}
}

// WriteList renders an aligned columnar listing.
func WriteList(w io.Writer, tickets []Ticket) error {
	if len(tickets) == 0 {
		fmt.Fprintln(w, "no matching tickets")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tSTATUS\tASSIGNEE\tCREATED\tSUMMARY")
	for _, tk := range tickets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tk.Number(),
			tk.Status(),
			tk.AssignedTo(),
			tk.CreatedAt(),
			truncate(tk.Summary(), summaryColumn),
		)
	}
	return tw.Flush()
}

// writeField emits one aligned "Key: value" report line.
func writeField(tw *tabwriter.Writer, key, value string) {
	fmt.Fprintf(tw, "  %s:\t%s\n", key, value)
}

// writeWrapped emits free text word-wrapped at reportWidth, indented
// two spaces. Blank lines in the input are preserved.
func writeWrapped(w io.Writer, text string) {
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(w)
			continue
		}
		for _, wrapped := range wrap(line, reportWidth-2) {
			fmt.Fprintf(w, "  %s\n", wrapped)
		}
	}
}

// wrap breaks a line into pieces no longer than width, on word
// boundaries where possible. Words longer than width stand alone.
func wrap(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}

// truncate shortens a string to at most width runes, marking the cut
// with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
