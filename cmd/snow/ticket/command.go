// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"github.com/fermitools/snow/cmd/snow/cli"
)

// Command returns the "snow ticket" subcommand tree.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "ticket",
		Summary: "Work with SNOW tickets",
		Description: `Report on and modify tickets in the Fermilab ServiceNow instance:
incidents, requests, requested items, and tasks.`,
		Subcommands: []*cli.Command{
			ShowCommand(),
			ListCommand(),
			AssignCommand(),
			JournalCommand(),
			ResolveCommand(),
			CreateCommand(),
			ViewerCommand(),
		},
	}
}
