// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"strings"
)

// Number is a normalized ticket number: a known prefix followed by a
// zero-padded numeric suffix at the type's fixed width.
type Number struct {
	Type  Type
	Value string
}

// String returns the normalized number ("INC000000000042").
func (n Number) String() string { return n.Value }

// ParseNumber normalizes user input into a ticket number. Accepts a
// prefixed number in any case ("inc42", "RITM0012345") or bare digits,
// which default to an incident. The numeric suffix is zero-padded to
// the type's fixed total width; leading zeros in the input are
// insignificant.
func ParseNumber(input string) (Number, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(input))
	if trimmed == "" {
		return Number{}, fmt.Errorf("empty ticket number")
	}

	ticketType := Incident
	digits := trimmed
	if !isDigits(trimmed) {
		matched := false
		for _, t := range Types {
			if strings.HasPrefix(trimmed, t.Prefix()) {
				ticketType = t
				digits = trimmed[len(t.Prefix()):]
				matched = true
				break
			}
		}
		if !matched {
			return Number{}, fmt.Errorf("unrecognized ticket number %q", input)
		}
		if digits == "" || !isDigits(digits) {
			return Number{}, fmt.Errorf("malformed ticket number %q: %s must be followed by digits",
				input, ticketType.Prefix())
		}
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}

	width := ticketType.numberWidth() - len(ticketType.Prefix())
	if len(digits) > width {
		return Number{}, fmt.Errorf("ticket number %q out of range for %s", input, ticketType)
	}

	return Number{
		Type:  ticketType,
		Value: ticketType.Prefix() + strings.Repeat("0", width-len(digits)) + digits,
	}, nil
}

// IsSysID reports whether a string looks like an instance sys_id: 32
// hex characters. Ticket numbers never take that shape, so reporting
// commands can accept either form of identifier.
func IsSysID(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
