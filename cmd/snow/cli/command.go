// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the CLI tree: either a leaf with a Run
// function or a dispatcher with Subcommands.
type Command struct {
	// Name is the command name as typed by the user.
	Name string

	// Summary is the one-line description shown in the parent's help.
	Summary string

	// Description is the longer help text shown by --help. Falls back
	// to Summary when empty.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	// Flags returns the command's flag set, typically via
	// FlagsFromParams. Nil means the command takes no flags.
	Flags func() *pflag.FlagSet

	// Subcommands dispatch on the first positional argument.
	Subcommands []*Command

	// Run executes the command with the positional arguments left
	// after flag parsing.
	Run func(args []string) error

	parent *Command
}

// Execute parses args and dispatches. It is the entry point for the
// whole tree; main calls it on the root command.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpArg(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name := args[0]
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.Execute(args[1:])
			}
		}
		if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
			return &UsageError{fmt.Sprintf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
				name, suggestion, c.path())}
		}
		return &UsageError{fmt.Sprintf("unknown command %q\n\nRun '%s --help' for usage.", name, c.path())}
	}

	if c.Run == nil {
		c.PrintHelp(os.Stderr)
		if len(c.Subcommands) > 0 {
			return &UsageError{"subcommand required"}
		}
		return &UsageError{fmt.Sprintf("%s does nothing on its own", c.path())}
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			return &UsageError{fmt.Sprintf("%s\n\nRun '%s --help' for usage.", err, c.path())}
		}
		args = flagSet.Args()
	}

	return c.Run(args)
}

// PrintHelp renders the command's help text.
func (c *Command) PrintHelp(w io.Writer) {
	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	switch {
	case c.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	case len(c.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", c.path())
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", c.path())
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		var rendered strings.Builder
		flagSet.SetOutput(&rendered)
		flagSet.PrintDefaults()
		if rendered.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", rendered.String())
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", c.path())
	}
}

// path returns the full command path ("snow ticket resolve").
func (c *Command) path() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.path() + " " + c.Name
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
