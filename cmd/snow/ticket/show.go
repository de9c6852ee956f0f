// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/fermitools/snow/cmd/snow/cli"
	"github.com/fermitools/snow/lib/servicenow"
	"github.com/fermitools/snow/lib/ticket"
)

type showParams struct {
	connectionParams
	cli.JSONOutput
	Journal bool `flag:"journal,j" desc:"include journal entries in the report"`
}

// ShowCommand reports a single ticket.
func ShowCommand() *cli.Command {
	var params showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Print a ticket report",
		Description: `Print the full fixed-width report for a ticket: primary information,
requestor, assignment, and the user-provided description. Accepts any
ticket number form (INC000000000042, inc42, bare digits for incidents,
RITM/REQ/TASK numbers) or a bare 32-character sys_id, which is looked
up across all ticket tables.`,
		Usage: "snow ticket show [flags] <number>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return &cli.UsageError{Message: "show takes exactly one ticket number"}
			}
			return runShow(&params, args[0])
		},
	}
}

func runShow(params *showParams, number string) error {
	conn, err := params.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	ctx := context.Background()

	var tickets []ticket.Ticket
	if ticket.IsSysID(number) {
		tk, err := conn.service.FindBySysID(ctx, number)
		if err != nil {
			return err
		}
		tickets = []ticket.Ticket{tk}
	} else {
		tickets, err = conn.service.Find(ctx, number)
		if err != nil {
			return err
		}
	}

	// A number matching several records is worth a warning but not a
	// failure: report them all.
	if len(tickets) > 1 {
		fmt.Fprintf(os.Stderr, "warning: %s matched %d records\n", tickets[0].Number(), len(tickets))
	}

	var journals [][]servicenow.JournalEntry
	if params.Journal {
		for _, tk := range tickets {
			journal, err := conn.service.Journal(ctx, tk)
			if err != nil {
				return err
			}
			journals = append(journals, journal)
		}
	}

	if done, err := params.EmitJSON(showResults(tickets, journals)); done {
		return err
	}

	for i, tk := range tickets {
		if i > 0 {
			fmt.Println()
		}
		var journal []servicenow.JournalEntry
		if params.Journal {
			journal = journals[i]
			if journal == nil {
				journal = []servicenow.JournalEntry{}
			}
		}
		if err := ticket.WriteReport(os.Stdout, tk, journal); err != nil {
			return err
		}
	}
	return nil
}

// showResult is the JSON shape of one reported ticket.
type showResult struct {
	Type    string                    `json:"type"`
	Record  servicenow.Record         `json:"record"`
	Journal []servicenow.JournalEntry `json:"journal,omitempty"`
}

func showResults(tickets []ticket.Ticket, journals [][]servicenow.JournalEntry) []showResult {
	results := make([]showResult, 0, len(tickets))
	for i, tk := range tickets {
		result := showResult{Type: tk.Type.String(), Record: tk.Record}
		if journals != nil {
			result.Journal = journals[i]
		}
		results = append(results, result)
	}
	return results
}
