// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/fermitools/snow/cmd/snow/cli"
	"github.com/fermitools/snow/lib/ticket"
	"github.com/fermitools/snow/lib/ticketui"
)

type viewerParams struct {
	listParams
}

// ViewerCommand opens the interactive ticket viewer over a list query.
func ViewerCommand() *cli.Command {
	var params viewerParams
	return &cli.Command{
		Name:    "viewer",
		Summary: "Browse tickets interactively",
		Description: `Open a terminal UI over the same query as 'snow ticket list': a
filterable ticket list with the full report alongside.`,
		Usage: "snow ticket viewer [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("viewer", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return &cli.UsageError{Message: "viewer takes no positional arguments"}
			}
			return runViewer(&params)
		},
	}
}

func runViewer(params *viewerParams) error {
	ticketType, err := ticket.ParseType(params.Type)
	if err != nil {
		return err
	}
	filter, err := buildFilter(&params.listParams)
	if err != nil {
		return err
	}

	conn, err := params.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	ctx := context.Background()

	if err := resolveFilterScope(ctx, conn.directory, &filter, params.User, params.Group); err != nil {
		return err
	}

	tickets, err := conn.service.List(ctx, ticketType, filter)
	if err != nil {
		return err
	}

	program := tea.NewProgram(
		ticketui.New(tickets, ticketui.DefaultTheme),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
