// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"time"

	"github.com/fermitools/snow/lib/servicenow"
)

// Subtype selects a lifecycle slice of a ticket listing.
type Subtype string

const (
	// SubtypeOpen matches tickets still being worked: anything not yet
	// closed or cancelled, resolved-awaiting-close included.
	SubtypeOpen Subtype = "open"

	// SubtypeClosed matches tickets closed out normally.
	SubtypeClosed Subtype = "closed"

	// SubtypeUnresolved matches tickets that have not reached their
	// resolved condition. For types without a separate resolved state
	// (requests, items, tasks) this is the same slice as open.
	SubtypeUnresolved Subtype = "unresolved"

	// SubtypeCancelled matches tickets closed by cancellation.
	SubtypeCancelled Subtype = "cancelled"
)

// ParseSubtype validates a user-supplied subtype string. The empty
// string is valid and means no lifecycle condition.
func ParseSubtype(value string) (Subtype, error) {
	switch Subtype(value) {
	case "", SubtypeOpen, SubtypeClosed, SubtypeUnresolved, SubtypeCancelled:
		return Subtype(value), nil
	}
	return "", fmt.Errorf("unknown subtype %q (want open, closed, unresolved, or cancelled)", value)
}

// Filter describes a ticket listing. The zero value lists every ticket
// of the type, which is never what an operator wants; the CLI defaults
// Subtype to open.
type Filter struct {
	// Subtype is the lifecycle slice. Empty means all.
	Subtype Subtype

	// Unassigned restricts to tickets with no assignee.
	Unassigned bool

	// SubmitBefore restricts to tickets created strictly before the
	// given instant. Zero means no restriction.
	SubmitBefore time.Time

	// AssignedTo restricts to tickets assigned to the user with this
	// sys_id.
	AssignedTo string

	// Group restricts to tickets assigned to the group with this
	// sys_id.
	Group string
}

// Query renders the filter as an encoded query for the given ticket
// type, ordered by number.
func (f Filter) Query(t Type) (servicenow.Query, error) {
	query, err := subtypeQuery(t, f.Subtype)
	if err != nil {
		return servicenow.Query{}, err
	}

	if f.Group != "" {
		query = query.Eq("assignment_group", f.Group)
	}
	if f.AssignedTo != "" {
		query = query.Eq("assigned_to", f.AssignedTo)
	}
	if f.Unassigned {
		query = query.IsEmpty("assigned_to")
	}
	if !f.SubmitBefore.IsZero() {
		query = query.Before("sys_created_on", f.SubmitBefore.UTC())
	}

	return query.OrderBy("number"), nil
}

// subtypeQuery renders the lifecycle conditions for one type and
// subtype. The per-type vocabularies live here and nowhere else.
func subtypeQuery(t Type, subtype Subtype) (servicenow.Query, error) {
	query := servicenow.NewQuery()
	if subtype == "" {
		return query, nil
	}

	switch t {
	case Incident:
		switch subtype {
		case SubtypeOpen:
			return query.Lt("incident_state", incidentStateClosed), nil
		case SubtypeClosed:
			return query.Eq("incident_state", incidentStateClosed), nil
		case SubtypeUnresolved:
			return query.Lt("incident_state", incidentStateResolved), nil
		case SubtypeCancelled:
			return query.Eq("incident_state", incidentStateCancelled), nil
		}

	case Request:
		switch subtype {
		case SubtypeOpen, SubtypeUnresolved:
			return query.Ne("request_state", requestClosedComplete).
				Ne("request_state", requestClosedIncomplete).
				Ne("request_state", requestClosedCancelled), nil
		case SubtypeClosed:
			return query.Eq("request_state", requestClosedComplete).
				OrEq("request_state", requestClosedIncomplete).
				OrEq("request_state", requestClosedCancelled), nil
		case SubtypeCancelled:
			return query.Eq("request_state", requestClosedCancelled), nil
		}

	case RequestedItem:
		switch subtype {
		case SubtypeOpen, SubtypeUnresolved:
			return query.Ne("stage", stageComplete).
				Ne("stage", stageCancelled), nil
		case SubtypeClosed:
			return query.Eq("stage", stageComplete).
				OrEq("stage", stageCancelled), nil
		case SubtypeCancelled:
			return query.Eq("stage", stageCancelled), nil
		}

	case Task:
		switch subtype {
		case SubtypeOpen, SubtypeUnresolved:
			return query.Lt("state", taskStateComplete), nil
		case SubtypeClosed:
			return query.Gte("state", taskStateComplete), nil
		case SubtypeCancelled:
			return query.Eq("state", taskStateSkipped), nil
		}
	}

	return servicenow.Query{}, fmt.Errorf("unknown subtype %q for %s", subtype, t)
}
