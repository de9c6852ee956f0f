// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseLinkNext(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "empty",
			header: "",
			want:   "",
		},
		{
			name:   "next present",
			header: `<https://fermi.servicenowservices.com/api/now/table/incident?sysparm_offset=100>;rel="next",<https://fermi.servicenowservices.com/api/now/table/incident?sysparm_offset=900>;rel="last"`,
			want:   "https://fermi.servicenowservices.com/api/now/table/incident?sysparm_offset=100",
		},
		{
			name:   "last page",
			header: `<https://fermi.servicenowservices.com/api/now/table/incident?sysparm_offset=0>;rel="first",<https://fermi.servicenowservices.com/api/now/table/incident?sysparm_offset=800>;rel="prev"`,
			want:   "",
		},
		{
			name:   "spaces around separators",
			header: `<https://x/a?o=10>; rel="next", <https://x/a?o=0>; rel="first"`,
			want:   "https://x/a?o=10",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := parseLinkNext(test.header); got != test.want {
				t.Errorf("parseLinkNext(%q) = %q, want %q", test.header, got, test.want)
			}
		})
	}
}

func TestPageIterator_Collect(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		switch request.URL.Query().Get("sysparm_offset") {
		case "":
			writer.Header().Set("Link", fmt.Sprintf(`<%s/api/now/table/incident?sysparm_offset=2>;rel="next"`, server.URL))
			writer.Write(listEnvelope(t, []map[string]any{
				{"sys_id": "a", "number": "INC000000000001"},
				{"sys_id": "b", "number": "INC000000000002"},
			}))
		case "2":
			writer.Write(listEnvelope(t, []map[string]any{
				{"sys_id": "c", "number": "INC000000000003"},
			}))
		default:
			t.Errorf("unexpected offset %q", request.URL.Query().Get("sysparm_offset"))
			writer.Write([]byte(`{"result":[]}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	records, err := client.List("incident", ListOptions{PageSize: 2}).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	want := []string{"INC000000000001", "INC000000000002", "INC000000000003"}
	for i, number := range want {
		if records[i].Number() != number {
			t.Errorf("records[%d] = %q, want %q", i, records[i].Number(), number)
		}
	}
}

func TestPageIterator_EmptyPageTerminates(t *testing.T) {
	requestCount := 0
	var server *httptest.Server
	server = httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
		writer.Header().Set("Content-Type", "application/json")
		// A next link past the end of the result set, as some instance
		// versions emit. The empty page must stop iteration.
		writer.Header().Set("Link", fmt.Sprintf(`<%s/api/now/table/incident?sysparm_offset=999>;rel="next"`, server.URL))
		writer.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	records, err := client.List("incident", ListOptions{}).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
	if requestCount != 1 {
		t.Errorf("made %d requests, want 1", requestCount)
	}
}

func TestPageIterator_ErrorPage(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusForbidden)
		writer.Write([]byte(`{"error":{"message":"Insufficient rights"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.List("incident", ListOptions{}).Next(context.Background())
	if !IsForbidden(err) {
		t.Errorf("IsForbidden = false for %v", err)
	}
}
