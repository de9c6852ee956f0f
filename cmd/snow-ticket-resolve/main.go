// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// snow-ticket-resolve is the historical single-purpose name for
// "snow ticket resolve".
package main

import (
	"os"

	"github.com/fermitools/snow/cmd/snow/commands"
	ticketcmd "github.com/fermitools/snow/cmd/snow/ticket"
)

func main() {
	command := ticketcmd.ResolveCommand()
	command.Name = "snow-ticket-resolve"
	command.Usage = "snow-ticket-resolve [flags] <number>"
	os.Exit(commands.Run(command, os.Args[1:]))
}
