// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/fermitools/snow/cmd/snow/cli"
	"github.com/fermitools/snow/lib/servicenow"
	"github.com/fermitools/snow/lib/ticket"
)

type journalParams struct {
	connectionParams
	cli.JSONOutput
	Text     string `flag:"text,m" desc:"entry text to append; omit to read the journal instead"`
	WorkNote bool   `flag:"work-note,w" desc:"append an internal work note rather than a comment"`
}

// JournalCommand reads or appends to a ticket's journal.
func JournalCommand() *cli.Command {
	var params journalParams
	return &cli.Command{
		Name:    "journal",
		Summary: "Read or append ticket journal entries",
		Description: `Without --text, print the ticket's journal entries, newest first. With
--text, append a customer-visible comment (or, with --work-note, an
internal work note).`,
		Usage: "snow ticket journal [flags] <number>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("journal", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return &cli.UsageError{Message: "journal takes exactly one ticket number"}
			}
			return runJournal(&params, args[0])
		},
	}
}

func runJournal(params *journalParams, number string) error {
	conn, err := params.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	ctx := context.Background()

	if strings.TrimSpace(params.Text) != "" {
		tk, err := conn.service.FindOne(ctx, number)
		if err != nil {
			return err
		}
		return conn.service.AddJournalEntry(ctx, tk, params.Text, params.WorkNote)
	}

	tickets, err := conn.service.Find(ctx, number)
	if err != nil {
		return err
	}

	journals := make([][]servicenow.JournalEntry, len(tickets))
	for i, tk := range tickets {
		if journals[i], err = conn.service.Journal(ctx, tk); err != nil {
			return err
		}
	}

	if done, err := params.EmitJSON(journalResults(tickets, journals)); done {
		return err
	}
	return writeJournals(os.Stdout, os.Stderr, tickets, journals)
}

// writeJournals prints one journal per matched record. A number
// matching several records is worth a warning but not a failure; each
// journal is labeled by sys_id so the reader can tell them apart.
func writeJournals(out, errOut io.Writer, tickets []ticket.Ticket, journals [][]servicenow.JournalEntry) error {
	if len(tickets) > 1 {
		fmt.Fprintf(errOut, "warning: %s matched %d records\n", tickets[0].Number(), len(tickets))
	}
	for i, tk := range tickets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if len(tickets) > 1 {
			fmt.Fprintf(out, "%s (%s):\n", tk.Number(), tk.SysID())
		}
		if err := ticket.WriteJournal(out, journals[i]); err != nil {
			return err
		}
	}
	return nil
}

// journalResult is the JSON shape of one matched record's journal.
type journalResult struct {
	Number  string                    `json:"number"`
	SysID   string                    `json:"sys_id"`
	Journal []servicenow.JournalEntry `json:"journal"`
}

func journalResults(tickets []ticket.Ticket, journals [][]servicenow.JournalEntry) []journalResult {
	results := make([]journalResult, 0, len(tickets))
	for i, tk := range tickets {
		results = append(results, journalResult{
			Number:  tk.Number(),
			SysID:   tk.SysID(),
			Journal: journals[i],
		})
	}
	return results
}
