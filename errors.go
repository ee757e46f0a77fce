// Copyright 2023 Princess B33f Heavy Industries
// SPDX-License-Identifier: MIT

package libopenapi

import "github.com/pb33f/libopenapi/datamodel"

// These re-export the sentinels loader.Load actually wraps its errors with
// (defined in datamodel so both loader and this package can reach them
// without an import cycle), so callers can write
// errors.Is(err, libopenapi.ErrStrictValidationFailed) against this
// package's own name without reaching into datamodel directly.
var (
	ErrNoConfiguration        = datamodel.ErrNoConfiguration
	ErrEmptyReference         = datamodel.ErrEmptyReference
	ErrStrictValidationFailed = datamodel.ErrStrictValidationFailed
)
