// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

package specresolver

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind classifies a resolution failure, matching the error taxonomy used
// throughout the rest of this module (safety.Kind, docreader.ParseError).
type Kind int

const (
	// IoFailure mirrors safety.IoFailure - a file the gate handed back could
	// not actually be read.
	IoFailure Kind = iota
	// PolicyRejection mirrors safety.PolicyRejection.
	PolicyRejection
	// ParseFailure mirrors docreader's parse errors.
	ParseFailure
	// ResolutionFailure covers empty refs, pointers that can't be found
	// after recovery, and resolved values that aren't mappings.
	ResolutionFailure
)

func (k Kind) String() string {
	switch k {
	case IoFailure:
		return "io failure"
	case PolicyRejection:
		return "policy rejection"
	case ParseFailure:
		return "parse failure"
	case ResolutionFailure:
		return "resolution failure"
	default:
		return "unknown"
	}
}

// ResolutionError carries the offending node and the breadcrumb trail of
// ref-keys that led to it, modeled on the teacher's resolver.ResolvingError
// (error + node + path) so failures stay diagnosable in a large tree.
type ResolutionError struct {
	Kind    Kind
	Message string
	Node    *yaml.Node
	Journey []string
}

func (e *ResolutionError) Error() string {
	line, col := 0, 0
	if e.Node != nil {
		line, col = e.Node.Line, e.Node.Column
	}
	path := "(root)"
	if len(e.Journey) > 0 {
		path = strings.Join(e.Journey, " -> ")
	}
	return fmt.Sprintf("%s: %s via %s [%d:%d]", e.Kind, e.Message, path, line, col)
}

func newErr(kind Kind, node *yaml.Node, journey []string, format string, args ...interface{}) *ResolutionError {
	return &ResolutionError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Node:    node,
		Journey: append([]string(nil), journey...),
	}
}
