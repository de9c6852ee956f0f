// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		wantType Type
		want     string
	}{
		{"INC000000000042", Incident, "INC000000000042"},
		{"INC42", Incident, "INC000000000042"},
		{"inc42", Incident, "INC000000000042"},
		{"  inc0042  ", Incident, "INC000000000042"},
		{"42", Incident, "INC000000000042"},
		{"000042", Incident, "INC000000000042"},
		{"REQ123", Request, "REQ000000000123"},
		{"RITM123", RequestedItem, "RITM0000123"},
		{"ritm0000123", RequestedItem, "RITM0000123"},
		{"TASK99", Task, "TASK0000099"},
		{"task0000099", Task, "TASK0000099"},
		{"INC0", Incident, "INC000000000000"},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			number, err := ParseNumber(test.input)
			if err != nil {
				t.Fatalf("ParseNumber(%q): %v", test.input, err)
			}
			if number.Type != test.wantType {
				t.Errorf("type = %v, want %v", number.Type, test.wantType)
			}
			if number.Value != test.want {
				t.Errorf("value = %q, want %q", number.Value, test.want)
			}
		})
	}
}

func TestParseNumber_RoundTrip(t *testing.T) {
	// Normalization is idempotent: a normalized number parses back to
	// itself.
	for _, input := range []string{"INC7", "REQ7", "RITM7", "TASK7"} {
		first, err := ParseNumber(input)
		if err != nil {
			t.Fatalf("ParseNumber(%q): %v", input, err)
		}
		second, err := ParseNumber(first.Value)
		if err != nil {
			t.Fatalf("ParseNumber(%q): %v", first.Value, err)
		}
		if second != first {
			t.Errorf("round trip of %q: %v != %v", input, second, first)
		}
	}
}

func TestParseNumber_Widths(t *testing.T) {
	// INC and REQ numbers are 15 characters; RITM and TASK are 11.
	widths := map[string]int{"INC1": 15, "REQ1": 15, "RITM1": 11, "TASK1": 11}
	for input, width := range widths {
		number, err := ParseNumber(input)
		if err != nil {
			t.Fatalf("ParseNumber(%q): %v", input, err)
		}
		if len(number.Value) != width {
			t.Errorf("len(%q) = %d, want %d", number.Value, len(number.Value), width)
		}
	}
}

func TestParseNumber_Errors(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"CHG000123",        // unknown prefix
		"INC",              // no digits
		"INCABC",           // non-numeric suffix
		"TASK12X",          // trailing junk
		"INC1234567890123", // wider than the 12-digit suffix
	} {
		if _, err := ParseNumber(input); err == nil {
			t.Errorf("ParseNumber(%q) succeeded, want error", input)
		}
	}
}

func TestParseNumber_RITMBeforeREQ(t *testing.T) {
	// Greedy prefix matching must try RITM before REQ.
	number, err := ParseNumber("RITM42")
	if err != nil {
		t.Fatalf("ParseNumber: %v", err)
	}
	if number.Type != RequestedItem {
		t.Errorf("type = %v, want RequestedItem", number.Type)
	}
}

func TestIsSysID(t *testing.T) {
	if !IsSysID("46e18c0fa9fe19810066a0083f76bd56") {
		t.Error("valid sys_id rejected")
	}
	if !IsSysID("46E18C0FA9FE19810066A0083F76BD56") {
		t.Error("uppercase sys_id rejected")
	}
	for _, input := range []string{
		"",
		"INC000000000042",
		"46e18c0f",                          // too short
		"46e18c0fa9fe19810066a0083f76bdzz",  // non-hex
		"46e18c0fa9fe19810066a0083f76bd561", // too long
	} {
		if IsSysID(input) {
			t.Errorf("IsSysID(%q) = true, want false", input)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"incident", Incident},
		{"INC", Incident},
		{"request", Request},
		{"sc_request", Request},
		{"ritm", RequestedItem},
		{"Requested Item", RequestedItem},
		{"task", Task},
		{"sc_task", Task},
	}
	for _, test := range tests {
		got, err := ParseType(test.input)
		if err != nil {
			t.Errorf("ParseType(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseType(%q) = %v, want %v", test.input, got, test.want)
		}
	}

	if _, err := ParseType("change"); err == nil {
		t.Error("ParseType(change) succeeded, want error")
	}
}
