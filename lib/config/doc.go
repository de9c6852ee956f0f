// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the snow YAML configuration file.
//
// Configuration comes from a single file specified by:
//   - the SNOW_CONFIG environment variable, or
//   - the --config flag passed to a command
//
// There are no fallbacks or automatic discovery. This keeps configuration
// deterministic and auditable: the instance a command talks to is always
// the one named in the file it was pointed at.
package config
