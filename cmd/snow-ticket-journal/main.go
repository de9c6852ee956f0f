// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// snow-ticket-journal is the historical single-purpose name for
// "snow ticket journal".
package main

import (
	"os"

	"github.com/fermitools/snow/cmd/snow/commands"
	ticketcmd "github.com/fermitools/snow/cmd/snow/ticket"
)

func main() {
	command := ticketcmd.JournalCommand()
	command.Name = "snow-ticket-journal"
	command.Usage = "snow-ticket-journal [flags] <number>"
	os.Exit(commands.Run(command, os.Args[1:]))
}
