// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/fermitools/snow/lib/clock"
	"github.com/fermitools/snow/lib/servicenow"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS directory_cache (
	kind       TEXT NOT NULL,
	key        TEXT NOT NULL,
	record     TEXT NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (kind, key)
);
`

// Cache is the persistent directory cache: one SQLite file keyed by
// lookup kind ("user", "group", ...) and lookup key, holding the
// flattened record as JSON with a fetch timestamp for TTL expiry.
type Cache struct {
	pool   *sqlitex.Pool
	ttl    time.Duration
	clock  clock.Clock
	logger *slog.Logger
	path   string
}

// CacheConfig holds the parameters for opening a Cache.
type CacheConfig struct {
	// Path is the database file path. ":memory:" works for tests.
	Path string

	// TTL is how long a cached record stays fresh. Required.
	TTL time.Duration

	// Clock provides time for TTL checks. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives operational messages. Defaults to a no-op
	// logger.
	Logger *slog.Logger
}

// OpenCache opens (creating if necessary) the cache database. A CLI
// process is single-threaded, so the pool holds one connection; that
// also makes ":memory:" behave.
func OpenCache(config CacheConfig) (*Cache, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("lookup: cache path is required")
	}
	if config.TTL <= 0 {
		return nil, fmt.Errorf("lookup: cache TTL must be positive")
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pool, err := sqlitex.NewPool(config.Path, sqlitex.PoolOptions{
		PoolSize: 1,
		PrepareConn: func(conn *sqlite.Conn) error {
			for _, pragma := range []string{
				"PRAGMA journal_mode=WAL",
				"PRAGMA synchronous=NORMAL",
				"PRAGMA busy_timeout=5000",
			} {
				if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
					return fmt.Errorf("lookup: %s: %w", pragma, err)
				}
			}
			return sqlitex.ExecuteScript(conn, cacheSchema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("lookup: opening cache %s: %w", config.Path, err)
	}

	return &Cache{
		pool:   pool,
		ttl:    config.TTL,
		clock:  clk,
		logger: logger,
		path:   config.Path,
	}, nil
}

// Close closes the cache database.
func (cache *Cache) Close() error {
	if err := cache.pool.Close(); err != nil {
		return fmt.Errorf("lookup: closing cache %s: %w", cache.path, err)
	}
	return nil
}

// Get retrieves a fresh cached record. The second return is false on a
// miss or an expired entry. Cache read errors are logged and reported
// as misses: a broken cache degrades to extra API calls, never to a
// failed lookup.
func (cache *Cache) Get(ctx context.Context, kind, key string) (servicenow.Record, bool) {
	conn, err := cache.pool.Take(ctx)
	if err != nil {
		cache.logger.Warn("cache unavailable", "error", err)
		return nil, false
	}
	defer cache.pool.Put(conn)

	var encoded string
	var fetchedAt int64
	found := false
	err = sqlitex.Execute(conn,
		`SELECT record, fetched_at FROM directory_cache WHERE kind = ? AND key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{kind, key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				encoded = stmt.ColumnText(0)
				fetchedAt = stmt.ColumnInt64(1)
				found = true
				return nil
			},
		})
	if err != nil {
		cache.logger.Warn("cache read failed", "kind", kind, "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	age := cache.clock.Now().Sub(time.Unix(fetchedAt, 0))
	if age > cache.ttl {
		return nil, false
	}

	var record servicenow.Record
	if err := json.Unmarshal([]byte(encoded), &record); err != nil {
		cache.logger.Warn("cache entry corrupt", "kind", kind, "key", key, "error", err)
		return nil, false
	}
	return record, true
}

// Put stores a record. Write errors are logged, not returned; the
// lookup that produced the record already succeeded.
func (cache *Cache) Put(ctx context.Context, kind, key string, record servicenow.Record) {
	encoded, err := json.Marshal(map[string]string(record))
	if err != nil {
		cache.logger.Warn("cache encode failed", "kind", kind, "key", key, "error", err)
		return
	}

	conn, err := cache.pool.Take(ctx)
	if err != nil {
		cache.logger.Warn("cache unavailable", "error", err)
		return
	}
	defer cache.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO directory_cache (kind, key, record, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (kind, key) DO UPDATE SET
		   record = excluded.record,
		   fetched_at = excluded.fetched_at`,
		&sqlitex.ExecOptions{
			Args: []any{kind, key, string(encoded), cache.clock.Now().Unix()},
		})
	if err != nil {
		cache.logger.Warn("cache write failed", "kind", kind, "key", key, "error", err)
	}
}
