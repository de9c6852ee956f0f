// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"context"
	"fmt"
)

// journalTable is the audit table holding comment and work-note
// entries for every task-derived record.
const journalTable = "sys_journal_field"

// JournalEntry is a single comment or work note on a ticket.
type JournalEntry struct {
	// CreatedAt is the instance-local timestamp string.
	CreatedAt string

	// CreatedBy is the author's username.
	CreatedBy string

	// Element is the journal field: "comments" or "work_notes".
	Element string

	// Value is the entry text.
	Value string
}

// IsWorkNote reports whether the entry is an internal work note rather
// than a customer-visible comment.
func (entry JournalEntry) IsWorkNote() bool {
	return entry.Element == "work_notes"
}

// ListJournal returns the journal entries attached to a record, newest
// first. The element_id on sys_journal_field is the owning record's
// sys_id, regardless of table.
func (client *Client) ListJournal(ctx context.Context, sysID string) ([]JournalEntry, error) {
	query := NewQuery().
		Eq("element_id", sysID).
		OrderByDesc("sys_created_on")

	records, err := client.List(journalTable, ListOptions{Query: query}).Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing journal for %s: %w", sysID, err)
	}

	entries := make([]JournalEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, JournalEntry{
			CreatedAt: record.Get("sys_created_on"),
			CreatedBy: record.Get("sys_created_by"),
			Element:   record.Get("element"),
			Value:     record.Get("value"),
		})
	}
	return entries, nil
}

// AddComment appends a customer-visible comment to a record's journal.
// Journal fields are append-only: writing the field creates an entry,
// the record itself does not change.
func (client *Client) AddComment(ctx context.Context, table, sysID, text string) error {
	_, err := client.Update(ctx, table, sysID, map[string]string{"comments": text})
	if err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}
	return nil
}

// AddWorkNote appends an internal work note to a record's journal.
func (client *Client) AddWorkNote(ctx context.Context, table, sysID, text string) error {
	_, err := client.Update(ctx, table, sysID, map[string]string{"work_notes": text})
	if err != nil {
		return fmt.Errorf("adding work note: %w", err)
	}
	return nil
}
