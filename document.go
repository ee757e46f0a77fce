// Copyright 2023 Princess B33f Heavy Industries
// SPDX-License-Identifier: MIT

// Package libopenapi is the public entry point for resolving a Swagger or
// OpenAPI document - and everything it references, locally or across
// files - into a single flattened document tree. Load is the only function
// most callers need; the safety, docreader, structure, specresolver,
// promoter and loader packages underneath it can be used directly by
// anything that needs finer-grained control over one stage of the
// pipeline.
package libopenapi

import (
	"github.com/pb33f/libopenapi/datamodel"
	"github.com/pb33f/libopenapi/loader"
)

// Load reads rootPath, validates its structure, resolves every $ref it can
// reach - internal pointers and external file references alike - into a
// single tree with every externally-sourced schema promoted into the root
// document's components, and returns the result. A nil config runs with
// the package defaults (8MiB file ceiling, non-strict validation, search
// roots limited to rootPath's own directory).
func Load(rootPath string, config *datamodel.DocumentConfiguration) (*loader.Result, error) {
	result, err := loader.Load(rootPath, config)
	if err != nil {
		return nil, wrapErr(err)
	}
	return result, nil
}
