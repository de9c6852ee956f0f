// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fermitools/snow/lib/servicenow"
)

// newTestService wires a Service to an httptest instance serving the
// given handler.
func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	client, err := servicenow.NewClient(servicenow.Config{
		InstanceURL: server.URL,
		Username:    "u",
		Password:    "p",
		HTTPClient:  server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewService(client, nil), server
}

func writeJSON(t *testing.T, writer http.ResponseWriter, payload any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestServiceFind_NormalizesAndRoutes(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.URL.Path, "/table/sc_req_item") {
			t.Errorf("path = %q, want sc_req_item table", request.URL.Path)
		}
		if got := request.URL.Query().Get("sysparm_query"); got != "number=RITM0000042" {
			t.Errorf("sysparm_query = %q", got)
		}
		writeJSON(t, writer, map[string]any{"result": []map[string]any{
			{"sys_id": "abc", "number": "RITM0000042", "stage": "fulfillment"},
		}})
	})

	tickets, err := service.Find(context.Background(), "ritm42")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("got %d tickets", len(tickets))
	}
	if tickets[0].Type != RequestedItem {
		t.Errorf("type = %v", tickets[0].Type)
	}
	if tickets[0].IsResolved() {
		t.Error("fulfillment-stage item reported resolved")
	}
}

func TestServiceFind_NoMatch(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, map[string]any{"result": []map[string]any{}})
	})

	_, err := service.Find(context.Background(), "INC42")
	if err == nil || !strings.Contains(err.Error(), "no ticket INC000000000042") {
		t.Errorf("err = %v", err)
	}
}

func TestServiceFindOne_RefusesAmbiguity(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, map[string]any{"result": []map[string]any{
			{"sys_id": "a", "number": "INC000000000042"},
			{"sys_id": "b", "number": "INC000000000042"},
		}})
	})

	_, err := service.FindOne(context.Background(), "INC42")
	if err == nil || !strings.Contains(err.Error(), "refusing to modify") {
		t.Errorf("err = %v", err)
	}
}

func TestServiceList_CapsPageSize(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		if got := request.URL.Query().Get("sysparm_limit"); got != "100" {
			t.Errorf("sysparm_limit = %q, want 100", got)
		}
		writeJSON(t, writer, map[string]any{"result": []map[string]any{}})
	})

	if _, err := service.List(context.Background(), Incident, Filter{Subtype: SubtypeOpen}); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestServiceFindBySysID(t *testing.T) {
	sysID := strings.Repeat("a", 32)
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		if strings.Contains(request.URL.Path, "/table/sc_task/") {
			writeJSON(t, writer, map[string]any{"result": map[string]any{
				"sys_id": sysID, "number": "TASK0000042", "state": "1",
			}})
			return
		}
		writer.WriteHeader(http.StatusNotFound)
		writeJSON(t, writer, map[string]any{
			"error":  map[string]any{"message": "No Record found"},
			"status": "failure",
		})
	})

	tk, err := service.FindBySysID(context.Background(), sysID)
	if err != nil {
		t.Fatalf("FindBySysID: %v", err)
	}
	if tk.Type != Task {
		t.Errorf("type = %v, want Task", tk.Type)
	}
	if tk.Number() != "TASK0000042" {
		t.Errorf("number = %q", tk.Number())
	}
}

func TestServiceFindBySysID_NoMatch(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		writeJSON(t, writer, map[string]any{
			"error":  map[string]any{"message": "No Record found"},
			"status": "failure",
		})
	})

	_, err := service.FindBySysID(context.Background(), strings.Repeat("f", 32))
	if err == nil || !strings.Contains(err.Error(), "no ticket with sys_id") {
		t.Errorf("err = %v", err)
	}
}

func TestServiceResolve(t *testing.T) {
	var patched map[string]string
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.Method == http.MethodPatch {
			json.NewDecoder(request.Body).Decode(&patched)
			writeJSON(t, writer, map[string]any{"result": map[string]any{
				"sys_id": "abc", "number": "INC000000000042", "incident_state": "6",
			}})
			return
		}
		t.Errorf("unexpected %s %s", request.Method, request.URL.Path)
	})

	open := Ticket{Type: Incident, Record: servicenow.Record{
		"sys_id": "abc", "number": "INC000000000042", "incident_state": "2",
	}}
	resolved, err := service.Resolve(context.Background(), open, "Fixed", "replaced disk")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !resolved.IsResolved() {
		t.Error("ticket not resolved after Resolve")
	}
	if patched["incident_state"] != "6" || patched["close_code"] != "Fixed" {
		t.Errorf("patched = %v", patched)
	}
}

func TestServiceResolve_AlreadyResolved(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
	})

	done := Ticket{Type: Incident, Record: servicenow.Record{
		"sys_id": "abc", "number": "INC000000000042",
		"incident_state": "7", "dv_incident_state": "Closed",
	}}
	_, err := service.Resolve(context.Background(), done, "Fixed", "notes")
	if err == nil || !strings.Contains(err.Error(), "already resolved") {
		t.Errorf("err = %v", err)
	}
}

func TestServiceReopen_UnsupportedType(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
	})

	request := Ticket{Type: Request, Record: servicenow.Record{
		"sys_id": "abc", "number": "REQ000000000042", "request_state": "closed_complete",
	}}
	_, err := service.Reopen(context.Background(), request)
	if err == nil || !strings.Contains(err.Error(), "cannot be reopened") {
		t.Errorf("err = %v", err)
	}
}

func TestServiceAssign_RequiresATarget(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
	})

	tk := Ticket{Type: Incident, Record: servicenow.Record{"sys_id": "abc", "number": "INC000000000042"}}
	_, err := service.Assign(context.Background(), tk, "", "")
	if err == nil || !strings.Contains(err.Error(), "nothing to assign") {
		t.Errorf("err = %v", err)
	}
}

func TestServiceCreate_Validation(t *testing.T) {
	service, _ := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
	})

	_, err := service.Create(context.Background(), CreateParams{CallerSysID: "abc"})
	if err == nil || !strings.Contains(err.Error(), "summary is required") {
		t.Errorf("err = %v", err)
	}

	_, err = service.Create(context.Background(), CreateParams{Summary: "broken"})
	if err == nil || !strings.Contains(err.Error(), "caller is required") {
		t.Errorf("err = %v", err)
	}
}
