// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package servicenow is a typed client for the ServiceNow REST Table
// API. It handles HTTP Basic authentication, encoded-query construction,
// Link-header pagination, rate-limit backoff, and structured error
// parsing. It knows nothing about ticket semantics — per-type state
// vocabularies and report formatting live in lib/ticket.
//
// All records come back as loosely-typed field maps ([Record]); the
// instance schema is authoritative and no local schema is enforced.
package servicenow
