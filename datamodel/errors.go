// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

package datamodel

import "errors"

var (
	// ErrNoConfiguration is returned when Load is called with both a nil
	// *DocumentConfiguration and an empty root path - nothing to fall back
	// on and nothing to resolve.
	ErrNoConfiguration = errors.New("no configuration available")

	// ErrEmptyReference is returned when a root path resolves to an empty
	// string after normalization.
	ErrEmptyReference = errors.New("reference is empty")

	// ErrStrictValidationFailed is returned when DocumentConfiguration.StrictValidation
	// is set and the Structural Validator found at least one defect.
	ErrStrictValidationFailed = errors.New("document failed strict structural validation")
)
