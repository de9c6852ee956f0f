// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"context"
	"fmt"
)

// Directory tables.
const (
	userTable  = "sys_user"
	groupTable = "sys_user_group"
)

// UserByName retrieves the sys_user record whose user_name matches.
// Returns a nil record (no error) when the user does not exist.
func (client *Client) UserByName(ctx context.Context, username string) (Record, error) {
	return client.one(ctx, userTable, NewQuery().Eq("user_name", username))
}

// UserByEmail retrieves the sys_user record whose email matches.
func (client *Client) UserByEmail(ctx context.Context, email string) (Record, error) {
	return client.one(ctx, userTable, NewQuery().Eq("email", email))
}

// UserBySysID retrieves a sys_user record by sys_id.
func (client *Client) UserBySysID(ctx context.Context, sysID string) (Record, error) {
	record, err := client.GetBySysID(ctx, userTable, sysID)
	if IsNotFound(err) {
		return nil, nil
	}
	return record, err
}

// GroupByName retrieves the sys_user_group record whose name matches.
// Returns a nil record (no error) when the group does not exist.
func (client *Client) GroupByName(ctx context.Context, name string) (Record, error) {
	return client.one(ctx, groupTable, NewQuery().Eq("name", name))
}

// GroupBySysID retrieves a sys_user_group record by sys_id.
func (client *Client) GroupBySysID(ctx context.Context, sysID string) (Record, error) {
	record, err := client.GetBySysID(ctx, groupTable, sysID)
	if IsNotFound(err) {
		return nil, nil
	}
	return record, err
}

// one runs a query expected to match at most one record. Multiple
// matches are an error: directory keys (usernames, group names) are
// unique on a healthy instance, and guessing would misdirect
// assignment operations.
func (client *Client) one(ctx context.Context, table string, query Query) (Record, error) {
	records, err := client.List(table, ListOptions{Query: query, PageSize: 2}).Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	switch len(records) {
	case 0:
		return nil, nil
	case 1:
		return records[0], nil
	default:
		return nil, fmt.Errorf("querying %s: %q matched %d records", table, query.Encode(), len(records))
	}
}
