// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fermitools/snow/lib/servicenow"
)

// Service runs ticket operations against an instance. It is a thin
// semantic layer: the client does the transport, the Type tables do the
// semantics, Service glues them.
type Service struct {
	client *servicenow.Client
	logger *slog.Logger
}

// NewService creates a Service. A nil logger defaults to slog.Default().
func NewService(client *servicenow.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// Find retrieves the tickets matching a user-supplied number. The
// number's prefix picks the table; more than one record can share a
// number on an instance with imported history, so Find returns a slice
// and the caller decides whether multiples are fatal.
func (service *Service) Find(ctx context.Context, input string) ([]Ticket, error) {
	number, err := ParseNumber(input)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("looking up ticket",
		"number", number.Value,
		"table", number.Type.Table(),
	)

	records, err := service.client.GetByNumber(ctx, number.Type.Table(), number.Value)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no ticket %s", number.Value)
	}

	tickets := make([]Ticket, 0, len(records))
	for _, record := range records {
		tickets = append(tickets, Ticket{Type: number.Type, Record: record})
	}
	return tickets, nil
}

// FindBySysID searches the ticket tables for a record by sys_id. A
// sys_id carries no type prefix, so the search fans out across all
// four tables; sys_ids are instance-unique, so the first hit wins.
func (service *Service) FindBySysID(ctx context.Context, sysID string) (Ticket, error) {
	for _, t := range Types {
		record, err := service.client.GetBySysID(ctx, t.Table(), sysID)
		if servicenow.IsNotFound(err) {
			continue
		}
		if err != nil {
			return Ticket{}, err
		}
		return FromResult(servicenow.QueryResult{Table: t.Table(), Record: record})
	}
	return Ticket{}, fmt.Errorf("no ticket with sys_id %s", sysID)
}

// FindOne is Find for callers that mutate: multiple matches are an
// error rather than a judgment call.
func (service *Service) FindOne(ctx context.Context, input string) (Ticket, error) {
	tickets, err := service.Find(ctx, input)
	if err != nil {
		return Ticket{}, err
	}
	if len(tickets) > 1 {
		return Ticket{}, fmt.Errorf("%s matched %d records; refusing to modify an ambiguous ticket",
			tickets[0].Number(), len(tickets))
	}
	return tickets[0], nil
}

// listPageSize caps records per page on listings. The instance default
// (10000) makes the first page slow; pagination collects the rest.
const listPageSize = 100

// List returns the tickets of a type matching a filter.
func (service *Service) List(ctx context.Context, t Type, filter Filter) ([]Ticket, error) {
	query, err := filter.Query(t)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("listing tickets",
		"table", t.Table(),
		"query", query.Encode(),
	)

	options := servicenow.ListOptions{Query: query, PageSize: listPageSize}
	records, err := service.client.List(t.Table(), options).Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %s tickets: %w", t, err)
	}

	tickets := make([]Ticket, 0, len(records))
	for _, record := range records {
		tickets = append(tickets, Ticket{Type: t, Record: record})
	}
	return tickets, nil
}

// Assign sets the assignment group and/or assignee of a ticket. Both
// arguments are sys_ids; empty means leave that side unchanged.
func (service *Service) Assign(ctx context.Context, tk Ticket, groupSysID, userSysID string) (Ticket, error) {
	fields := map[string]string{}
	if groupSysID != "" {
		fields["assignment_group"] = groupSysID
	}
	if userSysID != "" {
		fields["assigned_to"] = userSysID
	}
	if len(fields) == 0 {
		return Ticket{}, fmt.Errorf("assigning %s: nothing to assign", tk.Number())
	}

	record, err := service.client.Update(ctx, tk.Type.Table(), tk.SysID(), fields)
	if err != nil {
		return Ticket{}, fmt.Errorf("assigning %s: %w", tk.Number(), err)
	}
	return Ticket{Type: tk.Type, Record: record}, nil
}

// Resolve moves a ticket to its type's resolved state. The close code
// only applies to incidents; other types ignore it and carry the notes
// as a comment. Resolving an already-resolved ticket is an error.
func (service *Service) Resolve(ctx context.Context, tk Ticket, closeCode, notes string) (Ticket, error) {
	if tk.IsResolved() {
		return Ticket{}, fmt.Errorf("%s is already resolved (%s)", tk.Number(), tk.Status())
	}

	fields := tk.Type.ResolveFields(closeCode, notes)
	record, err := service.client.Update(ctx, tk.Type.Table(), tk.SysID(), fields)
	if err != nil {
		return Ticket{}, fmt.Errorf("resolving %s: %w", tk.Number(), err)
	}
	return Ticket{Type: tk.Type, Record: record}, nil
}

// Reopen returns a resolved ticket to an active state. Only incidents
// and tasks can be reopened.
func (service *Service) Reopen(ctx context.Context, tk Ticket) (Ticket, error) {
	fields := tk.Type.ReopenFields()
	if fields == nil {
		return Ticket{}, fmt.Errorf("%s tickets cannot be reopened", tk.Type)
	}
	if !tk.IsResolved() {
		return Ticket{}, fmt.Errorf("%s is not resolved (%s)", tk.Number(), tk.Status())
	}

	record, err := service.client.Update(ctx, tk.Type.Table(), tk.SysID(), fields)
	if err != nil {
		return Ticket{}, fmt.Errorf("reopening %s: %w", tk.Number(), err)
	}
	return Ticket{Type: tk.Type, Record: record}, nil
}

// CreateParams describes a new incident. Only incidents are created
// through this tool; requests and their items come from the service
// catalog.
type CreateParams struct {
	// Summary is the short description. Required.
	Summary string

	// Description is the long description.
	Description string

	// CallerSysID is the sys_id of the user the incident is opened
	// for. Required.
	CallerSysID string

	// GroupSysID optionally routes the incident to a group.
	GroupSysID string

	// Urgency and Impact are the numeric values ("1".."3"). Empty
	// leaves the instance defaults.
	Urgency string
	Impact  string
}

// Create opens a new incident and returns it with the instance-assigned
// number.
func (service *Service) Create(ctx context.Context, params CreateParams) (Ticket, error) {
	if params.Summary == "" {
		return Ticket{}, fmt.Errorf("creating incident: summary is required")
	}
	if params.CallerSysID == "" {
		return Ticket{}, fmt.Errorf("creating incident: caller is required")
	}

	fields := map[string]string{
		"short_description": params.Summary,
		"description":       params.Description,
		"caller_id":         params.CallerSysID,
	}
	if params.GroupSysID != "" {
		fields["assignment_group"] = params.GroupSysID
	}
	if params.Urgency != "" {
		fields["urgency"] = params.Urgency
	}
	if params.Impact != "" {
		fields["impact"] = params.Impact
	}

	record, err := service.client.Create(ctx, Incident.Table(), fields)
	if err != nil {
		return Ticket{}, fmt.Errorf("creating incident: %w", err)
	}

	service.logger.Info("created incident", "number", record.Number())
	return Ticket{Type: Incident, Record: record}, nil
}

// Journal returns a ticket's journal entries, newest first.
func (service *Service) Journal(ctx context.Context, tk Ticket) ([]servicenow.JournalEntry, error) {
	return service.client.ListJournal(ctx, tk.SysID())
}

// AddJournalEntry appends a comment (or, when workNote is set, an
// internal work note) to a ticket.
func (service *Service) AddJournalEntry(ctx context.Context, tk Ticket, text string, workNote bool) error {
	if workNote {
		return service.client.AddWorkNote(ctx, tk.Type.Table(), tk.SysID(), text)
	}
	return service.client.AddComment(ctx, tk.Type.Table(), tk.SysID(), text)
}
