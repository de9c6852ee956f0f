// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"github.com/fermitools/snow/lib/servicenow"
)

// Ticket pairs a raw record with its ticket type. All field access goes
// through the record's display-value accessors, so a Ticket renders the
// same whether it came from a number search or a filtered listing.
type Ticket struct {
	Type   Type
	Record servicenow.Record
}

// FromResult types a cross-table query result.
func FromResult(result servicenow.QueryResult) (Ticket, error) {
	t, err := TypeForTable(result.Table)
	if err != nil {
		return Ticket{}, err
	}
	return Ticket{Type: t, Record: result.Record}, nil
}

// Number returns the ticket number.
func (t Ticket) Number() string { return t.Record.Number() }

// SysID returns the record sys_id.
func (t Ticket) SysID() string { return t.Record.SysID() }

// Summary returns the short description.
func (t Ticket) Summary() string { return t.Record.Display("short_description") }

// Status returns the display form of the type's state field
// ("Resolved" rather than "6").
func (t Ticket) Status() string { return t.Record.Display(t.Type.StateField()) }

// IsResolved reports whether the ticket has reached its type's resolved
// condition.
func (t Ticket) IsResolved() bool { return t.Type.IsResolved(t.Record) }

// AssignedTo returns the assignee's display name, "(none)" when
// unassigned.
func (t Ticket) AssignedTo() string { return t.Record.Display("assigned_to") }

// AssignmentGroup returns the assignment group's display name.
func (t Ticket) AssignmentGroup() string { return t.Record.Display("assignment_group") }

// Requestor returns the display name of whoever the ticket was opened
// for. Incidents carry a caller_id; the request-side tables carry
// requested_for, with opened_by as the fallback for records predating
// that field.
func (t Ticket) Requestor() string {
	if t.Type == Incident {
		return t.Record.DisplayOr("caller_id", "(unknown)")
	}
	if value := t.Record.Display("requested_for"); value != "(none)" {
		return value
	}
	return t.Record.DisplayOr("opened_by", "(unknown)")
}

// CreatedAt returns the creation timestamp string as the instance
// renders it.
func (t Ticket) CreatedAt() string { return t.Record.Display("sys_created_on") }

// UpdatedAt returns the last-update timestamp string.
func (t Ticket) UpdatedAt() string { return t.Record.Display("sys_updated_on") }

// Priority returns the display priority ("3 - Moderate").
func (t Ticket) Priority() string { return t.Record.Display("priority") }

// Description returns the long, user-provided description.
func (t Ticket) Description() string { return t.Record.Get("description") }
