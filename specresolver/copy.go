// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

package specresolver

import "gopkg.in/yaml.v3"

// deepCopyNode clones a node and its whole subtree. Used once per $ref
// substitution so that each reference site owns an independent copy,
// matching §4.4: "deep-copies the result into a fresh mapping".
func deepCopyNode(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	clone := *node
	clone.Content = nil
	clone.Alias = nil
	if node.Alias != nil {
		clone.Alias = deepCopyNode(node.Alias)
	}
	if len(node.Content) > 0 {
		clone.Content = make([]*yaml.Node, len(node.Content))
		for i, c := range node.Content {
			clone.Content[i] = deepCopyNode(c)
		}
	}
	return &clone
}
