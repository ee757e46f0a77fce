// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

// Package safety implements the single chokepoint every cross-file reference
// load must pass through before a file is opened: path canonicalization,
// allow-listed root containment, extension filtering and a size ceiling.
//
// Nothing downstream of Resolve should ever call os.Open on a reference path
// directly - this package exists so the rest of the resolver can treat any
// path it holds as already vetted.
package safety

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pb33f/libopenapi/rolodex"
)

// MaxFileSize is the default ceiling on any single external document; a
// positive maxFileSize passed to NewGate overrides it for that Gate.
const MaxFileSize int64 = 8 * 1024 * 1024 // 8MiB

// Kind classifies why a reference was rejected.
type Kind int

const (
	// IoFailure means the file is missing, not a regular file, or unreadable.
	IoFailure Kind = iota
	// PolicyRejection means the path escaped every allow-listed root, or
	// failed the extension/size policy.
	PolicyRejection
)

func (k Kind) String() string {
	switch k {
	case IoFailure:
		return "io failure"
	case PolicyRejection:
		return "policy rejection"
	default:
		return "unknown"
	}
}

// GateError is returned whenever a reference cannot be safely resolved to a
// path on disk.
type GateError struct {
	Kind      Kind
	Reference string
	Reason    string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %q: %s", e.Kind, e.Reference, e.Reason)
}

// allowedExtensions is the closed set of document formats the rest of the
// pipeline knows how to read.
var allowedExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// Gate enforces the path safety policy. A zero-value Gate has no allow-listed
// roots, so every reference must be resolved relative to an explicit base
// directory, which itself becomes the root for that lookup.
type Gate struct {
	roots       []string
	maxFileSize int64
	logger      *slog.Logger
	rd          *rolodex.Rolodex
}

// NewGate creates a Gate allow-listing the supplied search roots, in the
// order they should be tried when a reference carries no base directory.
// An empty maxFileSize falls back to MaxFileSize. Each root is registered
// with an internal *rolodex.Rolodex, which performs the actual "try each
// root in order" lookup for that case (see Resolve).
func NewGate(roots []string, maxFileSize int64) *Gate {
	if maxFileSize <= 0 {
		maxFileSize = MaxFileSize
	}
	rd := rolodex.NewRolodex()
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if r == "" {
			continue
		}
		abs, err := filepath.Abs(filepath.Clean(r))
		if err != nil {
			continue
		}
		abs = toSlash(abs)
		cleaned = append(cleaned, abs)
		rd.AddLocalFS(abs, os.DirFS(abs))
	}
	return &Gate{
		roots:       cleaned,
		maxFileSize: maxFileSize,
		logger:      slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		rd:          rd,
	}
}

// Roots returns the allow-listed search roots, in lookup order.
func (g *Gate) Roots() []string {
	return append([]string(nil), g.roots...)
}

// Resolve normalizes referenceText and returns the canonical, safety-checked
// absolute path it names. When baseDirectory is non-empty the reference is
// resolved against it and the result is checked against the allow-listed
// roots (baseDirectory itself counts as an implicit root, since a file may
// only ever be reached through a chain of references rooted at one of the
// configured roots). When baseDirectory is empty, every configured root is
// tried in order and the first existing regular file wins.
func (g *Gate) Resolve(referenceText string, baseDirectory string) (string, error) {
	ref := normalizeReference(referenceText)
	if ref == "" {
		return "", &GateError{Kind: PolicyRejection, Reference: referenceText, Reason: "empty reference"}
	}
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "http:") || strings.HasPrefix(ref, "https:") {
		return "", &GateError{Kind: PolicyRejection, Reference: referenceText, Reason: "remote URIs are not supported"}
	}

	if baseDirectory != "" {
		return g.resolveAgainstRoot(ref, toSlash(mustAbs(baseDirectory)))
	}

	if len(g.roots) == 0 {
		return "", &GateError{Kind: PolicyRejection, Reference: referenceText, Reason: "no base directory or search roots configured"}
	}

	// no base directory: ask the rolodex to find the reference across every
	// registered root, in registration order, then run it through the same
	// policy checks a base-directory lookup would get.
	rf, err := g.rd.Open(ref)
	if err != nil {
		return "", &GateError{Kind: IoFailure, Reference: referenceText, Reason: err.Error()}
	}
	return g.checkPolicy(rf.GetFullPath(), ref)
}

// checkPolicy applies the extension/size/containment policy to a path the
// rolodex has already located, without re-deriving it from a root join - the
// rolodex may have served the file from any of its registered roots.
func (g *Gate) checkPolicy(candidate string, ref string) (string, error) {
	canonical, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		canonical = candidate
	}
	canonicalSlash := toSlash(canonical)

	inAnyRoot := false
	for _, root := range g.roots {
		if withinRoot(canonicalSlash, root) {
			inAnyRoot = true
			break
		}
	}
	if !inAnyRoot {
		g.logger.Warn("rejected reference outside every allow-listed root", "reference", ref)
		return "", &GateError{Kind: PolicyRejection, Reference: ref, Reason: "path escapes every allow-listed root"}
	}

	ext := strings.ToLower(filepath.Ext(canonical))
	if !allowedExtensions[ext] {
		return "", &GateError{Kind: PolicyRejection, Reference: ref, Reason: fmt.Sprintf("extension %q is not permitted", ext)}
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return "", &GateError{Kind: IoFailure, Reference: ref, Reason: err.Error()}
	}
	if !info.Mode().IsRegular() {
		return "", &GateError{Kind: IoFailure, Reference: ref, Reason: "not a regular file"}
	}
	maxSize := g.maxFileSize
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if info.Size() > maxSize {
		return "", &GateError{Kind: PolicyRejection, Reference: ref, Reason: fmt.Sprintf("file size %d exceeds limit %d", info.Size(), maxSize)}
	}

	return canonical, nil
}

func (g *Gate) resolveAgainstRoot(ref, root string) (string, error) {
	var candidate string
	if filepath.IsAbs(ref) {
		candidate = filepath.Clean(ref)
	} else {
		candidate = filepath.Clean(filepath.Join(root, ref))
	}

	canonical, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		// fall back to the lexically-cleaned path: EvalSymlinks fails for a
		// file that doesn't exist, which the Stat check below reports anyway.
		canonical = candidate
	}
	canonicalSlash := toSlash(canonical)

	inAnyRoot := withinRoot(canonicalSlash, root)
	for _, r := range g.roots {
		if inAnyRoot {
			break
		}
		inAnyRoot = withinRoot(canonicalSlash, r)
	}
	if !inAnyRoot {
		g.logger.Warn("rejected reference outside allow-listed root", "reference", ref, "root", root)
		return "", &GateError{Kind: PolicyRejection, Reference: ref, Reason: fmt.Sprintf("path escapes allow-listed root %q", root)}
	}

	ext := strings.ToLower(filepath.Ext(canonical))
	if !allowedExtensions[ext] {
		return "", &GateError{Kind: PolicyRejection, Reference: ref, Reason: fmt.Sprintf("extension %q is not permitted", ext)}
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return "", &GateError{Kind: IoFailure, Reference: ref, Reason: err.Error()}
	}
	if !info.Mode().IsRegular() {
		return "", &GateError{Kind: IoFailure, Reference: ref, Reason: "not a regular file"}
	}
	maxSize := g.maxFileSize
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if info.Size() > maxSize {
		return "", &GateError{Kind: PolicyRejection, Reference: ref, Reason: fmt.Sprintf("file size %d exceeds limit %d", info.Size(), maxSize)}
	}

	return canonical, nil
}

// withinRoot reports whether candidate is root itself or a descendant of it,
// comparing forward-slash-normalized paths.
func withinRoot(candidate, root string) bool {
	if candidate == root {
		return true
	}
	return strings.HasPrefix(candidate, root+"/")
}

func normalizeReference(ref string) string {
	ref = strings.ReplaceAll(ref, "\x00", "")
	ref = strings.TrimSpace(ref)
	ref = strings.ReplaceAll(ref, "\\", "/")
	return ref
}

func toSlash(p string) string {
	return filepath.ToSlash(p)
}

func mustAbs(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// CanonicalKey produces the stable file-identity key used by the resolver's
// file cache: a normalized absolute forward-slash path, so that two
// textually different references to the same file share one cache entry.
func CanonicalKey(canonicalPath string) string {
	abs, err := filepath.Abs(canonicalPath)
	if err != nil {
		abs = canonicalPath
	}
	return toSlash(filepath.Clean(abs))
}
