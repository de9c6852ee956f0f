// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fermitools/snow/lib/clock"
)

// newTestClient creates a Client backed by the given httptest.Server.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		InstanceURL: server.URL,
		Username:    "snow-reporter",
		Password:    "hunter2",
		HTTPClient:  server.Client(),
		Clock:       clock.Real(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

// listEnvelope renders a Table API list envelope for handler fixtures.
func listEnvelope(t *testing.T, records []map[string]any) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{"result": records})
	if err != nil {
		t.Fatalf("marshaling envelope: %v", err)
	}
	return body
}

func TestNewClient_HTTPSEnforcement(t *testing.T) {
	_, err := NewClient(Config{
		InstanceURL: "http://fermi.servicenowservices.com",
		Username:    "u",
		Password:    "p",
	})
	if err == nil {
		t.Fatal("expected error for HTTP URL")
	}
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient(Config{
		InstanceURL: "https://fermi.servicenowservices.com",
		Username:    "u",
	})
	if err == nil {
		t.Fatal("expected error for missing password")
	}
}

func TestClient_BasicAuthInjection(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotUser, gotPass, gotOK = request.BasicAuth()
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"result":{"sys_id":"abc123","number":"INC000000000042"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	record, err := client.GetBySysID(context.Background(), "incident", "abc123")
	if err != nil {
		t.Fatalf("GetBySysID: %v", err)
	}

	if !gotOK || gotUser != "snow-reporter" || gotPass != "hunter2" {
		t.Errorf("basic auth = (%q, %q, %v)", gotUser, gotPass, gotOK)
	}
	if record.Number() != "INC000000000042" {
		t.Errorf("number = %q", record.Number())
	}
}

func TestClient_DisplayValueSysparms(t *testing.T) {
	var gotQuery string
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotQuery = request.URL.RawQuery
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.List("incident", ListOptions{}).Next(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	parsed, err := http.NewRequest(http.MethodGet, "https://x/?"+gotQuery, nil)
	if err != nil {
		t.Fatal(err)
	}
	values := parsed.URL.Query()
	if got := values.Get("sysparm_display_value"); got != "all" {
		t.Errorf("sysparm_display_value = %q, want all", got)
	}
	if got := values.Get("sysparm_exclude_reference_link"); got != "true" {
		t.Errorf("sysparm_exclude_reference_link = %q, want true", got)
	}
}

func TestClient_ErrorParsing(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"error":{"message":"No Record found","detail":"Record doesn't exist or ACL restricts"},"status":"failure"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetBySysID(context.Background(), "incident", "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}

	want := `getting incident/missing: servicenow: HTTP 404: No Record found (Record doesn't exist or ACL restricts)`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestClient_AuthFailure(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"error":{"message":"User Not Authenticated","detail":"Required to provide Auth information"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetBySysID(context.Background(), "incident", "abc")
	if !IsAuthFailure(err) {
		t.Errorf("IsAuthFailure = false for %v", err)
	}
}

func TestClient_RateLimitBackoff(t *testing.T) {
	fakeClock := clock.Fake(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	requestCount := 0

	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
		if requestCount == 1 {
			writer.Header().Set("Retry-After", "30")
			writer.WriteHeader(http.StatusTooManyRequests)
			writer.Write([]byte(`{"error":{"message":"Rate limit exceeded"}}`))
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"result":{"sys_id":"abc","number":"INC000000000042"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		InstanceURL: server.URL,
		Username:    "u",
		Password:    "p",
		HTTPClient:  server.Client(),
		Clock:       fakeClock,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := client.GetBySysID(context.Background(), "incident", "abc")
		done <- err
	}()

	// Let the first request land and register its backoff timer, then
	// advance past the Retry-After deadline.
	deadline := time.Now().Add(5 * time.Second)
	for requestCount < 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	for i := 0; i < 5000; i++ {
		fakeClock.Advance(time.Second)
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("GetBySysID after backoff: %v", err)
			}
			if requestCount != 2 {
				t.Errorf("request count = %d, want 2", requestCount)
			}
			return
		default:
			time.Sleep(time.Millisecond)
		}
	}
	t.Fatal("request never retried after rate limit backoff")
}

// Paginated reads go through the same backoff as single-record
// requests: a 429 on the first page must not fail the listing.
func TestClient_PaginatedRateLimitBackoff(t *testing.T) {
	fakeClock := clock.Fake(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	requestCount := 0

	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
		if requestCount == 1 {
			writer.Header().Set("Retry-After", "30")
			writer.WriteHeader(http.StatusTooManyRequests)
			writer.Write([]byte(`{"error":{"message":"Rate limit exceeded"}}`))
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write(listEnvelope(t, []map[string]any{
			{"sys_id": "abc", "number": "INC000000000042"},
		}))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		InstanceURL: server.URL,
		Username:    "u",
		Password:    "p",
		HTTPClient:  server.Client(),
		Clock:       fakeClock,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		records, err := client.GetByNumber(context.Background(), "incident", "INC000000000042")
		if err == nil && len(records) != 1 {
			err = fmt.Errorf("got %d records, want 1", len(records))
		}
		done <- err
	}()

	deadline := time.Now().Add(5 * time.Second)
	for requestCount < 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	for i := 0; i < 5000; i++ {
		fakeClock.Advance(time.Second)
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("GetByNumber after backoff: %v", err)
			}
			if requestCount != 2 {
				t.Errorf("request count = %d, want 2", requestCount)
			}
			return
		default:
			time.Sleep(time.Millisecond)
		}
	}
	t.Fatal("paginated request never retried after rate limit backoff")
}

func TestClient_GetByNumber(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if got := request.URL.Query().Get("sysparm_query"); got != "number=INC000000000042" {
			t.Errorf("sysparm_query = %q", got)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write(listEnvelope(t, []map[string]any{
			{"sys_id": "abc", "number": "INC000000000042"},
		}))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	records, err := client.GetByNumber(context.Background(), "incident", "INC000000000042")
	if err != nil {
		t.Fatalf("GetByNumber: %v", err)
	}
	if len(records) != 1 || records[0].SysID() != "abc" {
		t.Errorf("records = %v", records)
	}
}

func TestClient_UpdateSendsPatch(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotMethod = request.Method
		json.NewDecoder(request.Body).Decode(&gotBody)
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"result":{"sys_id":"abc","incident_state":"6"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	record, err := client.Update(context.Background(), "incident", "abc", map[string]string{
		"incident_state": "6",
		"close_code":     "Fixed",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotBody["close_code"] != "Fixed" {
		t.Errorf("body = %v", gotBody)
	}
	if record.Get("incident_state") != "6" {
		t.Errorf("updated record = %v", record)
	}
}

func TestClient_UserLookupAmbiguity(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write(listEnvelope(t, []map[string]any{
			{"sys_id": "a", "user_name": "jdoe"},
			{"sys_id": "b", "user_name": "jdoe"},
		}))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.UserByName(context.Background(), "jdoe")
	if err == nil {
		t.Fatal("expected ambiguity error for duplicate username")
	}
}

func TestClient_UserLookupMiss(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	record, err := client.UserByName(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("UserByName: %v", err)
	}
	if record != nil {
		t.Errorf("record = %v, want nil for a miss", record)
	}
}
