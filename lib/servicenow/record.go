// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"encoding/json"
	"fmt"
)

// Record is a single table row as returned by the Table API: a loosely
// typed mapping of field name to string value. No schema is enforced
// locally; callers read fields through accessors that substitute
// placeholder defaults for absent values.
//
// Requests are made with sysparm_display_value=all, so the API returns
// each field as an object carrying both the raw value and its display
// value. Unmarshaling flattens that: the raw value is stored under the
// field name and the display value under "dv_" + name, mirroring the
// dv_-prefixed fields of the classic Glide record interface.
type Record map[string]string

// UnmarshalJSON flattens a Table API row. Each field is either a plain
// JSON string (sysparm_display_value=false responses) or an object with
// display_value and value keys (sysparm_display_value=all).
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("servicenow: decoding record: %w", err)
	}

	record := make(Record, len(raw))
	for name, value := range raw {
		var plain string
		if err := json.Unmarshal(value, &plain); err == nil {
			record[name] = plain
			continue
		}

		var wrapped struct {
			DisplayValue string `json:"display_value"`
			Value        string `json:"value"`
		}
		if err := json.Unmarshal(value, &wrapped); err != nil {
			// Reference links and other nested shapes that don't
			// match are skipped rather than failing the record.
			continue
		}
		record[name] = wrapped.Value
		record["dv_"+name] = wrapped.DisplayValue
	}

	*r = record
	return nil
}

// Get returns the raw value of a field, or "" when absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Display returns the display value of a field, falling back to the raw
// value, then to "(none)". This is the accessor report formatting uses:
// a missing assignee renders as "(none)", not an empty cell.
func (r Record) Display(field string) string {
	if value := r["dv_"+field]; value != "" {
		return value
	}
	if value := r[field]; value != "" {
		return value
	}
	return "(none)"
}

// DisplayOr is Display with a caller-chosen placeholder ("(unknown)"
// for identity fields, for example).
func (r Record) DisplayOr(field, placeholder string) string {
	if value := r["dv_"+field]; value != "" {
		return value
	}
	if value := r[field]; value != "" {
		return value
	}
	return placeholder
}

// SysID returns the record's sys_id, or "" for a record that never came
// from the instance.
func (r Record) SysID() string {
	return r["sys_id"]
}

// Number returns the record's ticket number (INC…, RITM…, etc).
func (r Record) Number() string {
	return r["number"]
}

// QueryResult pairs a record with the table it came from. The table
// name is what later dispatches to the correct ticket type: a bare
// sys_id or number search can span tables.
type QueryResult struct {
	Table  string
	Record Record
}

// tableResponse is the Table API envelope for list responses.
type tableResponse struct {
	Result []Record `json:"result"`
}

// recordResponse is the Table API envelope for single-record responses.
type recordResponse struct {
	Result Record `json:"result"`
}
