// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the snow CLI command tree. The snow binary
// and the single-purpose snow-ticket* wrappers both import it, so the
// historical command names and the subcommand tree stay in lockstep.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fermitools/snow/cmd/snow/cli"
	ticketcmd "github.com/fermitools/snow/cmd/snow/ticket"
)

// Root builds the complete snow command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "snow",
		Description: `snow: command-line tools for the Fermilab ServiceNow instance.

Report on, list, assign, journal, resolve, and create tickets from the
terminal or from monitoring scripts.`,
		Subcommands: []*cli.Command{
			ticketcmd.Command(),
		},
	}
}

// Run executes a command tree and maps the error to a process exit
// code. Errors print as plain text on stderr; an ExitError means the
// command already wrote its output and only the code matters. Shared
// by all the binaries' main functions.
func Run(command *cli.Command, args []string) int {
	err := command.Execute(args)
	if err == nil {
		return 0
	}

	var exit *cli.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	return 1
}
