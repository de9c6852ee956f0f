// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the snow tool: a small
// command tree over pflag with struct-tag flag binding, help
// rendering, typo suggestions, and JSON output support.
package cli
