// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"testing"

	"github.com/fermitools/snow/lib/lookup"
	"github.com/fermitools/snow/lib/servicenow"
)

// fakeDirectoryClient counts which user index resolveUser dispatches
// through.
type fakeDirectoryClient struct {
	byName  int
	byEmail int
}

func (c *fakeDirectoryClient) UserByName(ctx context.Context, username string) (servicenow.Record, error) {
	c.byName++
	return servicenow.Record{"sys_id": "u-name", "user_name": username}, nil
}

func (c *fakeDirectoryClient) UserByEmail(ctx context.Context, email string) (servicenow.Record, error) {
	c.byEmail++
	return servicenow.Record{"sys_id": "u-email", "email": email}, nil
}

func (c *fakeDirectoryClient) UserBySysID(ctx context.Context, sysID string) (servicenow.Record, error) {
	return servicenow.Record{"sys_id": sysID}, nil
}

func (c *fakeDirectoryClient) GroupByName(ctx context.Context, name string) (servicenow.Record, error) {
	return servicenow.Record{"sys_id": "g1", "name": name}, nil
}

func (c *fakeDirectoryClient) GroupBySysID(ctx context.Context, sysID string) (servicenow.Record, error) {
	return servicenow.Record{"sys_id": sysID}, nil
}

func TestResolveUserDispatch(t *testing.T) {
	client := &fakeDirectoryClient{}
	directory := lookup.NewDirectory(client, nil, nil)
	ctx := context.Background()

	record, err := resolveUser(ctx, directory, "jdoe@fnal.gov")
	if err != nil {
		t.Fatalf("resolveUser(email): %v", err)
	}
	if record.SysID() != "u-email" || client.byEmail != 1 {
		t.Errorf("email lookup went to the wrong index: %v, byEmail=%d", record, client.byEmail)
	}

	record, err = resolveUser(ctx, directory, "jdoe")
	if err != nil {
		t.Fatalf("resolveUser(username): %v", err)
	}
	if record.SysID() != "u-name" || client.byName != 1 {
		t.Errorf("username lookup went to the wrong index: %v, byName=%d", record, client.byName)
	}
}
