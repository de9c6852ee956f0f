// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// PageIterator lazily fetches pages of records from a paginated Table
// API query. Each call to Next fetches the next page. Returns nil, nil
// when all pages have been consumed.
//
// The iterator is not safe for concurrent use.
type PageIterator struct {
	client  *Client
	nextURL string
	done    bool
}

// Next fetches the next page of records. Returns nil, nil when no more
// pages are available.
func (iterator *PageIterator) Next(ctx context.Context) ([]Record, error) {
	if iterator.done || iterator.nextURL == "" {
		return nil, nil
	}

	body, header, err := iterator.client.doURL(ctx, http.MethodGet, iterator.nextURL, nil)
	if err != nil {
		return nil, err
	}

	var envelope tableResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	// The Table API paginates with an RFC 5988 Link header, same as
	// most REST services. No Link rel="next" means this was the last
	// page. An empty page also terminates: some instance versions
	// keep emitting a next link past the end.
	iterator.nextURL = parseLinkNext(header.Get("Link"))
	if iterator.nextURL == "" || len(envelope.Result) == 0 {
		iterator.done = true
	}

	return envelope.Result, nil
}

// Collect fetches all remaining pages and returns the records
// concatenated. Convenience for callers that need everything at once.
func (iterator *PageIterator) Collect(ctx context.Context) ([]Record, error) {
	var all []Record
	for {
		records, err := iterator.Next(ctx)
		if err != nil {
			return all, err
		}
		if records == nil {
			return all, nil
		}
		all = append(all, records...)
	}
}

// parseLinkNext extracts the URL with rel="next" from a Link header.
// Returns empty string if no next link is present.
//
// Format: <https://instance/...&sysparm_offset=100>;rel="next",<...>;rel="last"
func parseLinkNext(header string) string {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)

		segments := strings.SplitN(part, ";", 2)
		if len(segments) != 2 {
			continue
		}

		urlPart := strings.TrimSpace(segments[0])
		relPart := strings.TrimSpace(segments[1])

		if !strings.Contains(relPart, `rel="next"`) {
			continue
		}
		if strings.HasPrefix(urlPart, "<") && strings.HasSuffix(urlPart, ">") {
			return urlPart[1 : len(urlPart)-1]
		}
	}

	return ""
}
