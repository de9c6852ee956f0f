// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the command logger. Text output when stderr is a
// terminal, JSON when piped or redirected so cron jobs and Nagios
// handlers get machine-parseable lines. debug lowers the level from
// Info to Debug.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
