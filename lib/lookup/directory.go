// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fermitools/snow/lib/servicenow"
)

// Cache entry kinds. Keys are the lookup argument, so a user cached by
// username is a different entry than the same user cached by sys_id.
const (
	kindUser       = "user"
	kindUserEmail  = "user_email"
	kindUserSysID  = "user_sys_id"
	kindGroup      = "group"
	kindGroupSysID = "group_sys_id"
)

// directoryClient is the slice of the API client the directory needs.
type directoryClient interface {
	UserByName(ctx context.Context, username string) (servicenow.Record, error)
	UserByEmail(ctx context.Context, email string) (servicenow.Record, error)
	UserBySysID(ctx context.Context, sysID string) (servicenow.Record, error)
	GroupByName(ctx context.Context, name string) (servicenow.Record, error)
	GroupBySysID(ctx context.Context, sysID string) (servicenow.Record, error)
}

// Directory resolves user and group records with memoization. A nil
// *Cache disables the persistent layer; the in-process memo always
// applies.
type Directory struct {
	client directoryClient
	cache  *Cache
	logger *slog.Logger
	memo   map[string]servicenow.Record
}

// NewDirectory creates a Directory over the given client. cache may be
// nil. A nil logger defaults to slog.Default().
func NewDirectory(client directoryClient, cache *Cache, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{
		client: client,
		cache:  cache,
		logger: logger,
		memo:   make(map[string]servicenow.Record),
	}
}

// User resolves a username to its sys_user record. Unknown users are
// an error.
func (directory *Directory) User(ctx context.Context, username string) (servicenow.Record, error) {
	return directory.resolve(ctx, kindUser, username, directory.client.UserByName)
}

// UserByEmail resolves an email address to its sys_user record.
// Unknown addresses are an error.
func (directory *Directory) UserByEmail(ctx context.Context, email string) (servicenow.Record, error) {
	return directory.resolve(ctx, kindUserEmail, email, directory.client.UserByEmail)
}

// UserBySysID resolves a sys_id to its sys_user record.
func (directory *Directory) UserBySysID(ctx context.Context, sysID string) (servicenow.Record, error) {
	return directory.resolve(ctx, kindUserSysID, sysID, directory.client.UserBySysID)
}

// Group resolves a group name to its sys_user_group record. Unknown
// groups are an error.
func (directory *Directory) Group(ctx context.Context, name string) (servicenow.Record, error) {
	return directory.resolve(ctx, kindGroup, name, directory.client.GroupByName)
}

// GroupBySysID resolves a sys_id to its sys_user_group record.
func (directory *Directory) GroupBySysID(ctx context.Context, sysID string) (servicenow.Record, error) {
	return directory.resolve(ctx, kindGroupSysID, sysID, directory.client.GroupBySysID)
}

// resolve is the shared lookup path: memo, then persistent cache, then
// the instance. Hits at any layer populate the layers above it.
func (directory *Directory) resolve(
	ctx context.Context,
	kind, key string,
	fetch func(context.Context, string) (servicenow.Record, error),
) (servicenow.Record, error) {
	memoKey := kind + "\x00" + key
	if record, ok := directory.memo[memoKey]; ok {
		return record, nil
	}

	if directory.cache != nil {
		if record, ok := directory.cache.Get(ctx, kind, key); ok {
			directory.memo[memoKey] = record
			return record, nil
		}
	}

	record, err := fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("no %s %q", kindNoun(kind), key)
	}

	directory.logger.Debug("directory lookup", "kind", kind, "key", key)
	directory.memo[memoKey] = record
	if directory.cache != nil {
		directory.cache.Put(ctx, kind, key, record)
	}
	return record, nil
}

func kindNoun(kind string) string {
	switch kind {
	case kindGroup, kindGroupSysID:
		return "group"
	}
	return "user"
}
