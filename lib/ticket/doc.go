// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket implements the ticket-type taxonomy of the FNAL
// ServiceNow instance: Incidents, Requests, Requested Items, and Tasks.
//
// Each type lives in its own table with its own state field and state
// vocabulary, but they share a common shape (number, short description,
// assignment, journal). This package knows the per-type differences --
// number prefixes and widths, which field carries lifecycle state, what
// "resolved" means, which fields a resolve or reopen writes -- and
// presents them behind one Ticket value and one Service API.
//
// The package performs no I/O of its own beyond what the servicenow
// client does; all semantics are lookup tables, not a state machine.
package ticket
