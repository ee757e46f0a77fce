// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

// Package docreader turns a single file, already vetted by safety.Gate, into
// a *yaml.Node document tree. It is a narrow cousin of
// datamodel.ExtractSpecInfo: it only needs to pick a format and hand back a
// mapping root, not sniff an OpenAPI/Swagger/AsyncAPI version out of it.
package docreader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the document format chosen for a file.
type Format int

const (
	// FormatYAML is chosen for .yaml/.yml files, or by content sniff.
	FormatYAML Format = iota
	// FormatJSON is chosen for .json files, or by content sniff.
	FormatJSON
)

// ParseError wraps a read/parse failure with the path that caused it.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read %q: %s", e.Path, e.Reason)
}

// Read loads canonicalPath (already safety-gated) and parses it into a
// document tree. The returned node is always a yaml.DocumentNode whose sole
// content node is a yaml.MappingNode; any other shape is a ParseError.
func Read(canonicalPath string) (*yaml.Node, error) {
	data, err := os.ReadFile(canonicalPath)
	if err != nil {
		return nil, &ParseError{Path: canonicalPath, Reason: err.Error()}
	}
	return Parse(canonicalPath, data)
}

// Parse parses already-read bytes, choosing format the same way Read does.
// Exposed separately so callers that already hold file contents (tests,
// in-memory filesystems) don't need to round-trip through disk.
func Parse(path string, data []byte) (*yaml.Node, error) {
	if DetectFormat(path, data) == FormatJSON {
		// yaml.v3 parses JSON natively (JSON is a YAML subset), so there is
		// no separate code path here - only the detection differs, mirroring
		// datamodel.ExtractSpecInfo's parseJSON helper which only branches to
		// pick which decoder fills in SpecJSON, not how the node tree parses.
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}

	if len(root.Content) == 0 {
		return nil, &ParseError{Path: path, Reason: "document is empty"}
	}
	mappingRoot := root.Content[0]
	if mappingRoot.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Reason: "document root must be a mapping"}
	}
	if err := checkStringKeys(mappingRoot, path); err != nil {
		return nil, err
	}

	return &root, nil
}

// DetectFormat chooses YAML or JSON by extension, falling back to a content
// sniff of the first non-whitespace byte when the extension is ambiguous.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// checkStringKeys walks a mapping tree verifying every key node decodes to a
// plain string - a non-string key (e.g. a YAML merge key gone wrong, or a
// boolean/number used as a map key) is a rejection per the reader contract.
func checkStringKeys(node *yaml.Node, path string) error {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode || (keyNode.Tag != "" && keyNode.Tag != "!!str" && keyNode.Tag != "!!merge") {
				return &ParseError{Path: path, Reason: fmt.Sprintf("non-string key at line %d", keyNode.Line)}
			}
			if err := checkStringKeys(node.Content[i+1], path); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, c := range node.Content {
			if err := checkStringKeys(c, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsMappingRoot is a convenience guard used by callers that received a
// document via Read and want to assert its shape before further processing.
func IsMappingRoot(doc *yaml.Node) error {
	if doc == nil || doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return errors.New("document root must be a mapping")
	}
	return nil
}
