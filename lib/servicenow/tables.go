// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ListOptions controls filtering and page size for List.
type ListOptions struct {
	// Query is the encoded-query filter. Zero means no filter.
	Query Query

	// Fields restricts the returned columns (sysparm_fields). Empty
	// means all columns.
	Fields []string

	// PageSize is the records-per-page limit (sysparm_limit).
	// Defaults to the instance default (usually 10000) when zero;
	// listings pass a smaller page to keep first results fast.
	PageSize int
}

// GetByNumber retrieves the records in a table whose number field
// matches exactly. More than one match is possible (the instance does
// not enforce uniqueness across imported records), so the caller
// decides how to treat multiples.
func (client *Client) GetByNumber(ctx context.Context, table, number string) ([]Record, error) {
	iterator := client.List(table, ListOptions{Query: NewQuery().Eq("number", number)})
	records, err := iterator.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying %s for %s: %w", table, number, err)
	}
	return records, nil
}

// GetBySysID retrieves a single record by sys_id.
func (client *Client) GetBySysID(ctx context.Context, table, sysID string) (Record, error) {
	params := url.Values{}
	params.Set("sysparm_display_value", "all")
	params.Set("sysparm_exclude_reference_link", "true")
	path := "/api/now/table/" + table + "/" + sysID + "?" + params.Encode()

	var envelope recordResponse
	if err := client.get(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", table, sysID, err)
	}
	return envelope.Result, nil
}

// List returns a paginated iterator over the records in a table
// matching the options.
func (client *Client) List(table string, options ListOptions) *PageIterator {
	params := url.Values{}
	if !options.Query.IsZero() {
		params.Set("sysparm_query", options.Query.Encode())
	}
	if len(options.Fields) > 0 {
		params.Set("sysparm_fields", strings.Join(options.Fields, ","))
	}
	if options.PageSize > 0 {
		params.Set("sysparm_limit", strconv.Itoa(options.PageSize))
	}

	return &PageIterator{
		client:  client,
		nextURL: client.baseURL + tablePath(table, params),
	}
}

// Create inserts a record into a table and returns the stored record
// (with instance-assigned number and sys_id).
func (client *Client) Create(ctx context.Context, table string, fields map[string]string) (Record, error) {
	params := url.Values{}
	var envelope recordResponse
	if err := client.post(ctx, tablePath(table, params), fields, &envelope); err != nil {
		return nil, fmt.Errorf("creating %s record: %w", table, err)
	}
	return envelope.Result, nil
}

// Update patches fields on a record and returns the updated record.
func (client *Client) Update(ctx context.Context, table, sysID string, fields map[string]string) (Record, error) {
	params := url.Values{}
	params.Set("sysparm_display_value", "all")
	params.Set("sysparm_exclude_reference_link", "true")
	path := "/api/now/table/" + table + "/" + sysID + "?" + params.Encode()

	var envelope recordResponse
	if err := client.patch(ctx, path, fields, &envelope); err != nil {
		return nil, fmt.Errorf("updating %s/%s: %w", table, sysID, err)
	}
	return envelope.Result, nil
}
