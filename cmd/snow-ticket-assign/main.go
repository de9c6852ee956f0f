// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// snow-ticket-assign is the historical single-purpose name for
// "snow ticket assign".
package main

import (
	"os"

	"github.com/fermitools/snow/cmd/snow/commands"
	ticketcmd "github.com/fermitools/snow/cmd/snow/ticket"
)

func main() {
	command := ticketcmd.AssignCommand()
	command.Name = "snow-ticket-assign"
	command.Usage = "snow-ticket-assign [flags] <number>"
	os.Exit(commands.Run(command, os.Args[1:]))
}
