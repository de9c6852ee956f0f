// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"os"
	"reflect"
)

// JSONOutput is embeddable in a command's parameter struct to provide
// the --json flag and conditional JSON output.
//
//	type listParams struct {
//	    cli.JSONOutput
//	    Group string `flag:"group" desc:"assignment group"`
//	}
//
//	// In Run:
//	if done, err := params.EmitJSON(tickets); done {
//	    return err
//	}
//	// ... text formatting ...
type JSONOutput struct {
	OutputJSON bool `flag:"json" desc:"output as JSON"`
}

// EmitJSON writes result as indented JSON to stdout when --json is
// set. Returns (true, err) when JSON handled the output and the caller
// should not render text, (false, nil) otherwise. Nil slices are
// normalized so scripts never see null where [] was meant.
func (j *JSONOutput) EmitJSON(result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(normalizeNilSlice(result))
}

// WriteJSON marshals value as indented JSON to stdout.
func WriteJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
