// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketui is the interactive ticket viewer: a two-pane
// terminal UI with a ticket list on the left, the selected ticket's
// report on the right, and a fuzzy filter line. It renders a slice of
// tickets fetched up front; it performs no API calls of its own.
package ticketui
