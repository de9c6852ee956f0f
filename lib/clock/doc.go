// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code injects
// Real(); tests inject Fake() and advance it deterministically. The SNOW
// API client uses it for rate-limit backoff, and the lookup cache uses
// it for TTL checks.
package clock
