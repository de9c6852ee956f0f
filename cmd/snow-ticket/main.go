// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// snow-ticket is the historical single-purpose name for
// "snow ticket show".
package main

import (
	"os"

	"github.com/fermitools/snow/cmd/snow/commands"
	ticketcmd "github.com/fermitools/snow/cmd/snow/ticket"
)

func main() {
	command := ticketcmd.ShowCommand()
	command.Name = "snow-ticket"
	command.Usage = "snow-ticket [flags] <number>"
	os.Exit(commands.Run(command, os.Args[1:]))
}
