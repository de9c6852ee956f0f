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
	"github.com/fermitools/snow/lib/ticket"
)

type createParams struct {
	connectionParams
	Summary       string `flag:"summary,m" desc:"short description (required)"`
	Description   string `flag:"description,d" desc:"long description; '-' reads from stdin"`
	Caller        string `flag:"caller" desc:"username or email the incident is opened for (default: the API account)"`
	Group         string `flag:"group,g" desc:"assignment group for the new incident"`
	Urgency       string `flag:"urgency" desc:"urgency 1-3"`
	Impact        string `flag:"impact" desc:"impact 1-3"`
	NagiosHost    string `flag:"nagios-host" desc:"originating Nagios host; appends the alert URL to the description"`
	NagiosService string `flag:"nagios-service" desc:"originating Nagios service description"`
}

// CreateCommand opens a new incident.
func CreateCommand() *cli.Command {
	var params createParams
	return &cli.Command{
		Name:    "create",
		Summary: "Open a new incident",
		Description: `Open a new incident and print its assigned number. Only incidents are
created here; requests and requested items come from the service
catalog. Intended for scripted use from monitoring: with --nagios-host
(and optionally --nagios-service), the configured alert URL is
appended to the description.`,
		Usage: "snow ticket create [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return &cli.UsageError{Message: "create takes no positional arguments"}
			}
			if params.Summary == "" {
				return &cli.UsageError{Message: "create requires --summary"}
			}
			return runCreate(&params)
		},
	}
}

func runCreate(params *createParams) error {
	conn, err := params.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	ctx := context.Background()

	description := params.Description
	if description == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading description from stdin: %w", err)
		}
		description = string(raw)
	}

	if params.NagiosHost != "" {
		if url := conn.config.NagiosURL(params.NagiosHost, params.NagiosService); url != "" {
			description = strings.TrimRight(description, "\n") + "\n\nAlert: " + url + "\n"
		}
	}

	caller := params.Caller
	if caller == "" {
		caller = conn.config.ServiceNow.Username
	}
	callerRecord, err := resolveUser(ctx, conn.directory, caller)
	if err != nil {
		return err
	}

	var groupSysID string
	if params.Group != "" {
		groupRecord, err := conn.directory.Group(ctx, params.Group)
		if err != nil {
			return err
		}
		groupSysID = groupRecord.SysID()
	}

	created, err := conn.service.Create(ctx, ticket.CreateParams{
		Summary:     params.Summary,
		Description: description,
		CallerSysID: callerRecord.SysID(),
		GroupSysID:  groupSysID,
		Urgency:     params.Urgency,
		Impact:      params.Impact,
	})
	if err != nil {
		return err
	}

	fmt.Println(created.Number())
	return nil
}
