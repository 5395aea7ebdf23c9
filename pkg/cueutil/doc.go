// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Every structured file wappcheck reads goes through the same flow:
//
//  1. Compile the embedded schema
//  2. Compile (or extract) user data and unify it with the schema
//  3. Validate and decode to a Go value
//
// CUE sources (the CLI config file) use [ParseAndDecode] with
// [WithConcrete](false), since every config field is optional. JSON sources
// such as a wapp's wf_config.json use [ParseJSONAndDecode], which rejects
// anything that is not strict JSON before the schema is applied.
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseJSONAndDecode[map[string]any](
//	    []byte(schema),
//	    data,
//	    "#Manifest",
//	    cueutil.WithFilename("wf_config.json"),
//	)
//	if err != nil {
//	    return nil, err // error carries the offending field path
//	}
package cueutil
