// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/fermitools/snow/cmd/snow/cli"
	"github.com/fermitools/snow/lib/clock"
	"github.com/fermitools/snow/lib/config"
	"github.com/fermitools/snow/lib/lookup"
	"github.com/fermitools/snow/lib/servicenow"
	"github.com/fermitools/snow/lib/ticket"
)

// connectionParams are the flags every ticket subcommand shares.
// Embed it first in a command's params struct.
type connectionParams struct {
	ConfigPath string `flag:"config,c" desc:"path to the YAML config file (default: $SNOW_CONFIG)"`
	Debug      bool   `flag:"debug" desc:"enable debug logging"`
	NoCache    bool   `flag:"no-cache" desc:"bypass the on-disk directory cache"`
}

// connection bundles everything a subcommand needs to talk to the
// instance. Close releases the cache database, if one was opened.
type connection struct {
	config    *config.Config
	service   *ticket.Service
	directory *lookup.Directory
	logger    *slog.Logger

	cache *lookup.Cache
}

// connect loads configuration, builds the API client, and wires the
// service and directory layers. Prompts for the password on the
// terminal when the config omits it.
func (params *connectionParams) connect() (*connection, error) {
	logger := cli.NewLogger(params.Debug)

	var cfg *config.Config
	var err error
	if params.ConfigPath != "" {
		cfg, err = config.LoadFile(params.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	password := cfg.ServiceNow.Password
	if password == "" {
		password, err = promptPassword(cfg.ServiceNow.Username)
		if err != nil {
			return nil, err
		}
	}

	client, err := servicenow.NewClient(servicenow.Config{
		InstanceURL: cfg.ServiceNow.URL,
		Username:    cfg.ServiceNow.Username,
		Password:    password,
		Clock:       clock.Real(),
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	var cache *lookup.Cache
	if cfg.Cache.Path != "" && !params.NoCache {
		cache, err = lookup.OpenCache(lookup.CacheConfig{
			Path:   cfg.Cache.Path,
			TTL:    cfg.CacheTTL(),
			Clock:  clock.Real(),
			Logger: logger,
		})
		if err != nil {
			// The cache is an optimization. Warn and continue.
			logger.Warn("directory cache unavailable", "path", cfg.Cache.Path, "error", err)
			cache = nil
		}
	}

	return &connection{
		config:    cfg,
		service:   ticket.NewService(client, logger),
		directory: lookup.NewDirectory(client, cache, logger),
		logger:    logger,
		cache:     cache,
	}, nil
}

// Close releases the connection's resources.
func (c *connection) Close() {
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			c.logger.Warn("closing directory cache", "error", err)
		}
	}
}

// resolveUser accepts either a username or an email address; anything
// with an "@" resolves through the email index.
func resolveUser(ctx context.Context, directory *lookup.Directory, key string) (servicenow.Record, error) {
	if strings.Contains(key, "@") {
		return directory.UserByEmail(ctx, key)
	}
	return directory.User(ctx, key)
}

// promptPassword reads the account password from the controlling
// terminal. Refuses to run without one: piping a password through
// stdin would leave it in shell history and process listings.
func promptPassword(username string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password in config and stdin is not a terminal; " +
			"add servicenow.password to the config file")
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}
