// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// snow-ticket-create is the historical single-purpose name for
// "snow ticket create".
package main

import (
	"os"

	"github.com/fermitools/snow/cmd/snow/commands"
	ticketcmd "github.com/fermitools/snow/cmd/snow/ticket"
)

func main() {
	command := ticketcmd.CreateCommand()
	command.Name = "snow-ticket-create"
	command.Usage = "snow-ticket-create [flags]"
	os.Exit(commands.Run(command, os.Args[1:]))
}
