// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

package specresolver

import (
	"fmt"
	"path/filepath"

	"github.com/pb33f/libopenapi/safety"
	"gopkg.in/yaml.v3"
)

// walkPointer walks a '/'-separated key path into a mapping node. Every step
// must land on a mapping; a missing or non-mapping step is reported by err.
func walkPointer(root *yaml.Node, pointer string) (*yaml.Node, error) {
	segs := pointerSegments(pointer)
	current := root
	for _, seg := range segs {
		if current == nil || current.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("cannot descend into %q: not a mapping", seg)
		}
		_, value := findKeyTop(seg, current.Content)
		if value == nil {
			return nil, fmt.Errorf("key %q not found", seg)
		}
		current = value
	}
	return current, nil
}

func findKeyTop(key string, nodes []*yaml.Node) (*yaml.Node, *yaml.Node) {
	for i := 0; i+1 < len(nodes); i += 2 {
		if nodes[i].Value == key {
			return nodes[i], nodes[i+1]
		}
	}
	return nil, nil
}

// recoverDanglingComponent implements §4.4's recovery path for a failed
// components/... pointer walk: first scan every cached document for the
// exact pointer, then fall back to the KnowledgeCommonObjects.yaml
// convention in the current file's directory.
func (w *walker) recoverDanglingComponent(pointer string, curFileKey string, curDir string) (*yaml.Node, string, error) {
	if _, _, ok := componentKind(pointer); !ok {
		return nil, "", fmt.Errorf("pointer %q is not a components pointer, no recovery possible", pointer)
	}

	// (a) scan every already-cached document.
	for key, rec := range w.files {
		if key == curFileKey {
			continue
		}
		if v, err := walkPointer(mappingRoot(rec.root), pointer); err == nil {
			return v, key, nil
		}
	}
	if v, err := walkPointer(mappingRoot(w.rootFile.root), pointer); err == nil && curFileKey != w.rootFile.Key {
		return v, w.rootFile.Key, nil
	}

	// (b) convention-driven filename: <domain>/models/<ver>/<leaf>/KnowledgeCommonObjects.yaml
	conventionPath := filepath.Join(curDir, "KnowledgeCommonObjects.yaml")
	canon, gerr := w.gate.Resolve(conventionPath, curDir)
	if gerr != nil {
		return nil, "", fmt.Errorf("dangling reference %q could not be recovered: %w", pointer, gerr)
	}
	key := safety.CanonicalKey(canon)
	rec, err := w.loadAndCache(key, canon)
	if err != nil {
		return nil, "", fmt.Errorf("dangling reference %q could not be recovered: %w", pointer, err)
	}
	v, perr := walkPointer(mappingRoot(rec.root), pointer)
	if perr != nil {
		return nil, "", fmt.Errorf("dangling reference %q not found in convention file %q: %w", pointer, conventionPath, perr)
	}
	return v, key, nil
}

// mappingRoot unwraps a *yaml.Node that might be a DocumentNode down to its
// mapping content, the shape every pointer walk and promotion operates on.
func mappingRoot(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// setMapKey inserts or overwrites key=value in a mapping node.
func setMapKey(node *yaml.Node, key, value string) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = stringScalar(value)
			return
		}
	}
	node.Content = append(node.Content, stringScalar(key), stringScalar(value))
}

func stringScalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func stripRefKey(node *yaml.Node) {
	out := node.Content[:0]
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "$ref" {
			continue
		}
		out = append(out, node.Content[i], node.Content[i+1])
	}
	node.Content = out
}
