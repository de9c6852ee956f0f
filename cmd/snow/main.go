// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/fermitools/snow/cmd/snow/commands"
)

func main() {
	os.Exit(commands.Run(commands.Root(), os.Args[1:]))
}
