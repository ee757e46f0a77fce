// Copyright 2022 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

// Package datamodel holds the loader's DocumentConfiguration, the sentinel errors loader.Load wraps its failures
// with, and SpecInfo extraction, which detects the OpenAPI/Swagger/AsyncAPI type and version of a raw document.
package datamodel
