// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fermitools/snow/lib/servicenow"
)

// Type identifies one of the four ticket classes the instance serves.
type Type int

const (
	// Incident is an unplanned interruption (table: incident).
	Incident Type = iota

	// Request is a service request (table: sc_request).
	Request

	// RequestedItem is a line item under a request (table: sc_req_item).
	RequestedItem

	// Task is a catalog task under a requested item (table: sc_task).
	Task
)

// Types lists every ticket type, in prefix-matching order. RITM must
// sort before REQ: prefix matching is greedy and "RITM0001" must not
// parse as an REQ ticket with suffix "ITM0001".
var Types = []Type{Incident, RequestedItem, Request, Task}

// typeInfo is the static per-type description everything else derives
// from.
type typeInfo struct {
	name        string
	prefix      string
	numberWidth int
	table       string
	stateField  string
}

var typeInfos = map[Type]typeInfo{
	Incident:      {"Incident", "INC", 15, "incident", "incident_state"},
	Request:       {"Request", "REQ", 15, "sc_request", "request_state"},
	RequestedItem: {"Requested Item", "RITM", 11, "sc_req_item", "stage"},
	Task:          {"Task", "TASK", 11, "sc_task", "state"},
}

// String returns the human-readable type name.
func (t Type) String() string { return typeInfos[t].name }

// Prefix returns the ticket-number prefix ("INC", "RITM", ...).
func (t Type) Prefix() string { return typeInfos[t].prefix }

// Table returns the backing table name.
func (t Type) Table() string { return typeInfos[t].table }

// StateField returns the field carrying lifecycle state for this type.
func (t Type) StateField() string { return typeInfos[t].stateField }

// numberWidth is the fixed total width of a normalized ticket number,
// prefix included.
func (t Type) numberWidth() int { return typeInfos[t].numberWidth }

// TypeForTable maps a table name back to its ticket type. Used to
// re-type records found by cross-table searches.
func TypeForTable(table string) (Type, error) {
	for t, info := range typeInfos {
		if info.table == table {
			return t, nil
		}
	}
	return 0, fmt.Errorf("no ticket type for table %q", table)
}

// ParseType maps a user-supplied type name ("incident", "ritm", ...)
// to a Type. Accepts type names, prefixes, and table names,
// case-insensitively.
func ParseType(name string) (Type, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for t, info := range typeInfos {
		switch needle {
		case strings.ToLower(info.name),
			strings.ToLower(info.prefix),
			info.table:
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown ticket type %q (want incident, request, ritm, or task)", name)
}

// Incident state values. 6 and above are terminal or near-terminal:
// Resolved (6), Closed (7), Cancelled (8).
const (
	incidentStateActive    = "2"
	incidentStateResolved  = "6"
	incidentStateClosed    = "7"
	incidentStateCancelled = "8"
)

// Task state values: Open (1), Work in Progress (2), Closed Complete
// (3), Closed Incomplete (4), Closed Skipped (7).
const (
	taskStateOpen     = "1"
	taskStateComplete = "3"
	taskStateSkipped  = "7"
)

// Request and requested-item terminal vocabularies.
const (
	requestClosedComplete   = "closed_complete"
	requestClosedIncomplete = "closed_incomplete"
	requestClosedCancelled  = "closed_cancelled"
	stageComplete           = "complete"
	stageCancelled          = "Request Cancelled"
)

// IsResolved reports whether a record of this type has reached its
// resolved condition.
func (t Type) IsResolved(record servicenow.Record) bool {
	state := record.Get(t.StateField())
	switch t {
	case Incident:
		return stateAtLeast(state, 6)
	case Request:
		return state == requestClosedComplete ||
			state == requestClosedIncomplete ||
			state == requestClosedCancelled
	case RequestedItem:
		return state == stageComplete || state == stageCancelled
	case Task:
		return stateAtLeast(state, 3)
	}
	return false
}

// ResolveFields returns the field updates that resolve a ticket of this
// type. Incidents take a close code and notes; the other types carry
// the notes as a comment.
func (t Type) ResolveFields(closeCode, notes string) map[string]string {
	switch t {
	case Incident:
		return map[string]string{
			"incident_state": incidentStateResolved,
			"close_code":     closeCode,
			"close_notes":    notes,
		}
	case Request:
		return map[string]string{
			"request_state": requestClosedComplete,
			"comments":      notes,
		}
	case RequestedItem:
		return map[string]string{
			"stage":    stageComplete,
			"comments": notes,
		}
	case Task:
		return map[string]string{
			"state":    taskStateComplete,
			"comments": notes,
		}
	}
	return nil
}

// ReopenFields returns the field updates that return a resolved ticket
// to an active state. Requests and requested items cannot be reopened
// through the API; callers get a nil map and must refuse.
func (t Type) ReopenFields() map[string]string {
	switch t {
	case Incident:
		return map[string]string{"incident_state": incidentStateActive}
	case Task:
		return map[string]string{"state": taskStateOpen}
	}
	return nil
}

// stateAtLeast compares a numeric state string against a threshold.
// Non-numeric states (corrupt or display values) compare as below any
// threshold rather than erroring: a report should render, not fail.
func stateAtLeast(state string, threshold int) bool {
	value, err := strconv.Atoi(strings.TrimSpace(state))
	if err != nil {
		return false
	}
	return value >= threshold
}
