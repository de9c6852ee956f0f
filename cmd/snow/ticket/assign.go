// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/fermitools/snow/cmd/snow/cli"
)

type assignParams struct {
	connectionParams
	User  string `flag:"user,u" desc:"username or email to assign the ticket to"`
	Group string `flag:"group,g" desc:"group to assign the ticket to"`
}

// AssignCommand reassigns a ticket.
func AssignCommand() *cli.Command {
	var params assignParams
	return &cli.Command{
		Name:    "assign",
		Summary: "Assign a ticket to a user and/or group",
		Description: `Set the assignment group and/or assignee of a ticket. At least one of
--user or --group is required. Names are resolved against the instance
directory; an unknown name fails before anything is modified.`,
		Usage: "snow ticket assign [flags] <number>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("assign", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return &cli.UsageError{Message: "assign takes exactly one ticket number"}
			}
			if params.User == "" && params.Group == "" {
				return &cli.UsageError{Message: "assign requires --user and/or --group"}
			}
			return runAssign(&params, args[0])
		},
	}
}

func runAssign(params *assignParams, number string) error {
	conn, err := params.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	ctx := context.Background()

	var userSysID, groupSysID string
	if params.User != "" {
		record, err := resolveUser(ctx, conn.directory, params.User)
		if err != nil {
			return err
		}
		userSysID = record.SysID()
	}
	if params.Group != "" {
		record, err := conn.directory.Group(ctx, params.Group)
		if err != nil {
			return err
		}
		groupSysID = record.SysID()
	}

	tk, err := conn.service.FindOne(ctx, number)
	if err != nil {
		return err
	}

	updated, err := conn.service.Assign(ctx, tk, groupSysID, userSysID)
	if err != nil {
		return err
	}

	fmt.Printf("%s assigned to %s / %s\n",
		updated.Number(), updated.AssignmentGroup(), updated.AssignedTo())
	return nil
}
