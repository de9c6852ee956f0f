// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket implements the snow ticket subcommands: show, list,
// assign, journal, resolve, create, and the interactive viewer.
package ticket
