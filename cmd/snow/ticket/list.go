// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/fermitools/snow/cmd/snow/cli"
	"github.com/fermitools/snow/lib/lookup"
	"github.com/fermitools/snow/lib/ticket"
)

type listParams struct {
	connectionParams
	cli.JSONOutput
	Type         string `flag:"type,t" default:"incident" desc:"ticket type: incident, request, ritm, or task"`
	Subtype      string `flag:"subtype,s" default:"open" desc:"lifecycle slice: open, closed, unresolved, or cancelled"`
	User         string `flag:"user,u" desc:"restrict to tickets assigned to this user (username or email)"`
	Group        string `flag:"group,g" desc:"restrict to tickets assigned to this group"`
	Unassigned   bool   `flag:"unassigned" desc:"restrict to tickets with no assignee"`
	SubmitBefore string `flag:"submit-before" desc:"restrict to tickets created before this time (YYYY-MM-DD or RFC 3339)"`
}

// ListCommand lists tickets matching a filter.
func ListCommand() *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List tickets matching a filter",
		Description: `List tickets of one type as an aligned table. The default filter is
open incidents; --user, --group, --unassigned, --subtype, and
--submit-before narrow or change the slice.`,
		Usage: "snow ticket list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return &cli.UsageError{Message: "list takes no positional arguments"}
			}
			return runList(&params)
		},
	}
}

func runList(params *listParams) error {
	ticketType, err := ticket.ParseType(params.Type)
	if err != nil {
		return err
	}
	filter, err := buildFilter(params)
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

	if done, err := params.EmitJSON(listResults(tickets)); done {
		return err
	}
	return ticket.WriteList(os.Stdout, tickets)
}

// buildFilter translates the flag values that need no directory
// lookups. User and group names resolve later, once a connection
// exists.
func buildFilter(params *listParams) (ticket.Filter, error) {
	subtype, err := ticket.ParseSubtype(params.Subtype)
	if err != nil {
		return ticket.Filter{}, err
	}

	filter := ticket.Filter{
		Subtype:    subtype,
		Unassigned: params.Unassigned,
	}
	if params.SubmitBefore != "" {
		cutoff, err := parseTimeFlag(params.SubmitBefore)
		if err != nil {
			return ticket.Filter{}, err
		}
		filter.SubmitBefore = cutoff
	}
	return filter, nil
}

// resolveFilterScope fills the filter's sys_id fields from user and
// group names.
func resolveFilterScope(ctx context.Context, directory *lookup.Directory, filter *ticket.Filter, user, group string) error {
	if user != "" {
		record, err := resolveUser(ctx, directory, user)
		if err != nil {
			return err
		}
		filter.AssignedTo = record.SysID()
	}
	if group != "" {
		record, err := directory.Group(ctx, group)
		if err != nil {
			return err
		}
		filter.Group = record.SysID()
	}
	return nil
}

// parseTimeFlag accepts a bare date or a full RFC 3339 timestamp.
func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q (want YYYY-MM-DD or RFC 3339)", value)
}

// listResult is the JSON shape of one listed ticket.
type listResult struct {
	Number   string `json:"number"`
	Status   string `json:"status"`
	Assignee string `json:"assignee"`
	Group    string `json:"group"`
	Created  string `json:"created"`
	Summary  string `json:"summary"`
}

func listResults(tickets []ticket.Ticket) []listResult {
	results := make([]listResult, 0, len(tickets))
	for _, tk := range tickets {
		results = append(results, listResult{
			Number:   tk.Number(),
			Status:   tk.Status(),
			Assignee: tk.AssignedTo(),
			Group:    tk.AssignmentGroup(),
			Created:  tk.CreatedAt(),
			Summary:  tk.Summary(),
		})
	}
	return results
}
