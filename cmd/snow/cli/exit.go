// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// UsageError marks an error caused by how the command was invoked
// rather than by the operation itself. main prints it and exits 2.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// ExitCode returns the conventional usage-error exit code.
func (e *UsageError) ExitCode() int { return 2 }

// ExitError signals a non-zero exit without an extra error message:
// the command already wrote its own output. Scripted callers of the
// mutation commands key off the exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish a handled non-zero exit from an
// unexpected error to display.
func (e *ExitError) ExitCode() int { return e.Code }
