// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

package datamodel

import "net/url"

// DocumentConfiguration is used to configure the document creation process. It was added in v0.6.0 to allow
// for more fine-grained control over controls and new features.
//
// loader.Load resolves local file references whatever AllowFileReferences is set to. Remote HTTP dereferencing is
// out of scope for this loader (see loader.Load): BaseURL, AllowFileReferences and AllowRemoteReferences are
// retained on this struct purely so callers migrating existing configuration values don't need to strip them,
// but loader.Load never reads them.
type DocumentConfiguration struct {
	// BaseURL is not read by loader.Load; remote references are never fetched.
	BaseURL *url.URL

	// BasePath is added to the Path Safety Gate's allow-listed search roots. It's usually the location of the root
	// specification. Relative references are resolved against the directory of the file that contains them.
	BasePath string

	// AllowFileReferences is not read by loader.Load, which always resolves local file references.
	AllowFileReferences bool

	// AllowRemoteReferences is not read by loader.Load; remote references are never fetched.
	AllowRemoteReferences bool

	// BypassDocumentCheck will skip validation that the document is a supported OpenAPI/Swagger/AsyncAPI spec,
	// parsing whatever tree is found regardless.
	BypassDocumentCheck bool

	// SearchRoots lists additional allow-listed directories the Path Safety Gate may search when a reference
	// carries no base directory of its own (see safety.Gate).
	SearchRoots []string

	// MaxFileSize overrides safety.MaxFileSize for this document's external references. Zero means use the default.
	MaxFileSize int64

	// StrictValidation causes loader.Load to fail when the structural validator reports any defect, rather than
	// returning them alongside a best-effort resolved document.
	StrictValidation bool
}

func NewOpenDocumentConfiguration() *DocumentConfiguration {
	return &DocumentConfiguration{
		AllowFileReferences:   true,
		AllowRemoteReferences: true,
	}
}

func NewClosedDocumentConfiguration() *DocumentConfiguration {
	return &DocumentConfiguration{
		AllowFileReferences:   false,
		AllowRemoteReferences: false,
	}
}
