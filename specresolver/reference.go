// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

package specresolver

import (
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodedRef is the result of splitting a $ref value on its first '#'.
type decodedRef struct {
	FilePart string
	Pointer  string // always without a leading '/'
}

// decodeReference splits a reference string of form FILE#/JSON/POINTER,
// FILE, or #/JSON/POINTER, folding backslashes to forward slashes first.
func decodeReference(ref string) (decodedRef, bool) {
	ref = strings.ReplaceAll(ref, "\\", "/")
	idx := strings.Index(ref, "#")
	var filePart, pointer string
	if idx < 0 {
		filePart = ref
	} else {
		filePart = ref[:idx]
		pointer = ref[idx+1:]
	}
	pointer = strings.TrimPrefix(pointer, "/")
	if filePart == "" && pointer == "" {
		return decodedRef{}, false
	}
	return decodedRef{FilePart: filePart, Pointer: pointer}, true
}

// isExternalFileReference reports whether a file part names a data file the
// gate understands (no leading '#', and a recognized extension), which per
// §4.4 makes the $ref eligible for replacement even with sibling keys.
func isExternalFileReference(ref string) bool {
	d, ok := decodeReference(ref)
	if !ok || d.FilePart == "" {
		return false
	}
	ext := strings.ToLower(path.Ext(d.FilePart))
	return ext == ".yaml" || ext == ".yml" || ext == ".json"
}

// extractRef inspects a mapping node for a $ref key. refOnly reports whether
// $ref is the mapping's sole key.
func extractRef(node *yaml.Node) (refText string, refOnly bool, ok bool) {
	if node.Kind != yaml.MappingNode {
		return "", false, false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "$ref" {
			refText = node.Content[i+1].Value
			refOnly = len(node.Content) == 2
			return refText, refOnly, true
		}
	}
	return "", false, false
}

// pointerSegments splits a JSON pointer into its unescaped key segments.
func pointerSegments(pointer string) []string {
	if pointer == "" {
		return nil
	}
	parts := strings.Split(pointer, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		out = append(out, p)
	}
	return out
}

// schemaNameFromPointer returns the last segment of a pointer when it lives
// under components/schemas, which is the "derived name" used for
// x-resolved-ref markers and promotion.
func schemaNameFromPointer(pointer string) (string, bool) {
	segs := pointerSegments(pointer)
	if len(segs) >= 3 && segs[0] == "components" && segs[1] == "schemas" {
		return segs[len(segs)-1], true
	}
	return "", false
}

// componentKind reports the components/<kind>/<name> this pointer names, if
// any, and the name itself.
func componentKind(pointer string) (kind, name string, ok bool) {
	segs := pointerSegments(pointer)
	if len(segs) >= 3 && segs[0] == "components" {
		return segs[1], segs[len(segs)-1], true
	}
	return "", "", false
}

// basenameWithoutExt returns "User" for "models/User.yaml".
func basenameWithoutExt(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
