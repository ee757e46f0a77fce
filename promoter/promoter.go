// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

// Package promoter implements the component promoter: once the reference
// resolver's walk terminates, it lifts schemas (and parameters, request
// bodies, responses) reached through external files into the root
// document's components namespace, so later lookups work without
// re-reading files.
package promoter

import (
	"sort"

	"github.com/pb33f/libopenapi/orderedmap"
	"github.com/pb33f/libopenapi/specresolver"
	"gopkg.in/yaml.v3"
)

// Promote merges every externally-touched file's components into root's own
// components namespace, per §4.5's policy. It mutates root in place and
// returns the list of schema names it inserted or overwrote, for callers
// that want a promotion report. The ledger is an orderedmap rather than a
// plain slice because the same name can be touched by more than one file
// (a canonical overwrite re-promotes a name a stub file already
// contributed) - a plain append would report it twice.
func Promote(result *specresolver.Result) []string {
	root := mappingRoot(result.Root)
	ledger := orderedmap.New[string, bool]()

	keys := make([]string, 0, len(result.Files))
	for k := range result.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic merge order over an unordered map (§5)

	for _, key := range keys {
		file := result.Files[key]
		for _, name := range promoteFile(root, file) {
			ledger.Set(name, true)
		}
	}

	promoted := make([]string, 0, ledger.Len())
	for pair := ledger.First(); pair != nil; pair = pair.Next() {
		promoted = append(promoted, pair.Key())
	}
	return promoted
}

func promoteFile(root *yaml.Node, file *specresolver.FileRecord) []string {
	mergeAll := file.WholeFileUsed() || referencesComponentFamily(file)

	fileRoot := mappingRoot(file.Root())
	if fileRoot == nil {
		return nil
	}

	if isSchemaDefinitionFile(fileRoot) {
		if file.WholeFileUsed() {
			name := basenameWithoutExt(file.Path)
			mergeSchema(root, name, fileRoot, true)
			return []string{name}
		}
		return nil
	}

	var promoted []string

	schemas := childMapping(fileRoot, "components", "schemas")
	if schemas != nil {
		for i := 0; i+1 < len(schemas.Content); i += 2 {
			name := schemas.Content[i].Value
			if !mergeAll && !schemaNameReferenced(file, name) {
				continue
			}
			isCanonical := name == basenameWithoutExt(file.Path)
			if mergeSchema(root, name, schemas.Content[i+1], isCanonical) {
				promoted = append(promoted, name)
			}
		}
	}

	for _, kind := range []string{"parameters", "requestBodies", "responses"} {
		section := childMapping(fileRoot, "components", kind)
		if section == nil {
			continue
		}
		if !mergeAll {
			continue
		}
		for i := 0; i+1 < len(section.Content); i += 2 {
			name := section.Content[i].Value
			mergeWithoutOverwrite(root, kind, name, section.Content[i+1])
		}
	}

	return promoted
}

// referencesComponentFamily reports whether any fragment recorded against
// file points under components/{parameters,requestBodies,responses}/..., per
// §4.5's "those component kinds transitively reference schemas by name".
func referencesComponentFamily(file *specresolver.FileRecord) bool {
	for pointer := range file.Fragments {
		for _, kind := range []string{"parameters", "requestBodies", "responses"} {
			if hasComponentPrefix(pointer, kind) {
				return true
			}
		}
	}
	return false
}

func hasComponentPrefix(pointer, kind string) bool {
	prefix := "components/" + kind + "/"
	return len(pointer) > len(prefix) && pointer[:len(prefix)] == prefix
}

func schemaNameReferenced(file *specresolver.FileRecord, name string) bool {
	if file.Fragments["components/schemas/"+name] {
		return true
	}
	return file.SchemaRefs["components/schemas/"+name]
}

// isSchemaDefinitionFile reports whether a file is a bare schema body (has
// "type" or "properties" at its top level) rather than a full OpenAPI
// document, per §4.5's final bullet.
func isSchemaDefinitionFile(root *yaml.Node) bool {
	if root == nil || root.Kind != yaml.MappingNode {
		return false
	}
	_, t := findTop(root, "type")
	_, p := findTop(root, "properties")
	_, components := findTop(root, "components")
	_, paths := findTop(root, "paths")
	return (t != nil || p != nil) && components == nil && paths == nil
}

func findTop(node *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i], node.Content[i+1]
		}
	}
	return nil, nil
}

// mergeSchema inserts or overwrites components.schemas.<name> in root.
// isCanonical set means the source file's basename equals name, so it wins
// over an existing stub (§4.5, §8 "Canonical-name overwrite").
func mergeSchema(root *yaml.Node, name string, value *yaml.Node, isCanonical bool) bool {
	section := ensureComponentSection(root, "schemas")
	existingIdx := findKeyIndex(section, name)
	if existingIdx < 0 {
		section.Content = append(section.Content, stringScalar(name), value)
		return true
	}
	if isCanonical {
		section.Content[existingIdx+1] = value
		return true
	}
	return false
}

func mergeWithoutOverwrite(root *yaml.Node, kind, name string, value *yaml.Node) bool {
	section := ensureComponentSection(root, kind)
	if findKeyIndex(section, name) >= 0 {
		return false
	}
	section.Content = append(section.Content, stringScalar(name), value)
	return true
}

func findKeyIndex(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func ensureComponentSection(root *yaml.Node, kind string) *yaml.Node {
	components := childMapping(root, "components")
	if components == nil {
		components = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		root.Content = append(root.Content, stringScalar("components"), components)
	}
	for i := 0; i+1 < len(components.Content); i += 2 {
		if components.Content[i].Value == kind {
			return components.Content[i+1]
		}
	}
	section := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	components.Content = append(components.Content, stringScalar(kind), section)
	return section
}

func childMapping(node *yaml.Node, path ...string) *yaml.Node {
	current := node
	for _, seg := range path {
		if current == nil || current.Kind != yaml.MappingNode {
			return nil
		}
		_, v := findTop(current, seg)
		current = v
	}
	if current == nil || current.Kind != yaml.MappingNode {
		return nil
	}
	return current
}

func mappingRoot(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

func stringScalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func basenameWithoutExt(p string) string {
	base := p
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '/' || base[i] == '\\' {
			base = base[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}
