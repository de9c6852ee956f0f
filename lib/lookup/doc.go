// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package lookup resolves users and groups against the instance
// directory tables, with two layers of caching: process-local
// memoization (directory records never change mid-invocation) and an
// optional on-disk SQLite cache with a TTL, so repeated CLI runs do
// not re-fetch the same operator and group records.
package lookup
