// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// snow-ticket-list is the historical single-purpose name for
// "snow ticket list".
package main

import (
	"os"

	"github.com/fermitools/snow/cmd/snow/commands"
	ticketcmd "github.com/fermitools/snow/cmd/snow/ticket"
)

func main() {
	command := ticketcmd.ListCommand()
	command.Name = "snow-ticket-list"
	command.Usage = "snow-ticket-list [flags]"
	os.Exit(commands.Run(command, os.Args[1:]))
}
