// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/fermitools/snow/cmd/snow/cli"
)

type resolveParams struct {
	connectionParams
	Notes     string `flag:"notes,m" desc:"resolution notes (required)"`
	CloseCode string `flag:"code" default:"Fixed" desc:"incident close code (incidents only)"`
	Reopen    bool   `flag:"reopen" desc:"reopen a resolved ticket instead"`
}

// ResolveCommand resolves or reopens a ticket.
func ResolveCommand() *cli.Command {
	var params resolveParams
	return &cli.Command{
		Name:    "resolve",
		Summary: "Resolve (or reopen) a ticket",
		Description: `Move a ticket to its resolved state. Incidents take a close code and
close notes; requests, items, and tasks carry the notes as a comment.
With --reopen, return a resolved incident or task to an active state
(requests and items cannot be reopened).`,
		Usage: "snow ticket resolve [flags] <number>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("resolve", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return &cli.UsageError{Message: "resolve takes exactly one ticket number"}
			}
			if !params.Reopen && params.Notes == "" {
				return &cli.UsageError{Message: "resolve requires --notes"}
			}
			return runResolve(&params, args[0])
		},
	}
}

func runResolve(params *resolveParams, number string) error {
	conn, err := params.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	ctx := context.Background()

	tk, err := conn.service.FindOne(ctx, number)
	if err != nil {
		return err
	}

	if params.Reopen {
		reopened, err := conn.service.Reopen(ctx, tk)
		if err != nil {
			return err
		}
		fmt.Printf("%s reopened (%s)\n", reopened.Number(), reopened.Status())
		return nil
	}

	resolved, err := conn.service.Resolve(ctx, tk, params.CloseCode, params.Notes)
	if err != nil {
		return err
	}
	fmt.Printf("%s resolved (%s)\n", resolved.Number(), resolved.Status())
	return nil
}
