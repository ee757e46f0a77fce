// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

// Package specresolver is the reference resolver: the centerpiece of this
// module. It walks a document tree exactly once, depth-first, replacing
// every eligible $ref with its resolved content in place, maintaining a
// cross-file cache, a cycle set and an identity-visited set the way the
// teacher's resolver.Resolver/index.SpecIndex pair does, but as a single
// walk rather than an index-then-resolve two-pass design (see DESIGN.md).
package specresolver

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pb33f/libopenapi/docreader"
	"github.com/pb33f/libopenapi/safety"
	"gopkg.in/yaml.v3"
)

// CycleRecord documents a back-edge the walker refused to follow a second
// time. Polymorphic is set when the cycle was reached through an
// allOf/oneOf/anyOf composition, which downstream codegen usually treats as
// safe to leave circular (see SPEC_FULL.md, supplemented feature 1).
type CycleRecord struct {
	RefKey      string
	Node        *yaml.Node
	Journey     []string
	Polymorphic bool
}

// FileRecord is the resolver's per-file bookkeeping: the parsed document,
// its directory (for resolving further relative references), and the set of
// fragments actually touched, which drives the component promoter.
type FileRecord struct {
	Key        string
	Path       string
	Dir        string
	root       *yaml.Node
	Fragments  map[string]bool // pointer -> used; "/" is the whole-file sentinel
	SchemaRefs map[string]bool // nested #/components/schemas/... pointers seen transitively
}

// WholeFileUsed reports whether the whole-file sentinel was recorded.
func (f *FileRecord) WholeFileUsed() bool { return f.Fragments["/"] }

// Root exposes the file's parsed document node (DocumentNode wrapping a
// single mapping), already fully resolved by the time resolution completes.
func (f *FileRecord) Root() *yaml.Node { return f.root }

// Result is everything the Component Promoter needs from a completed walk.
type Result struct {
	Root    *yaml.Node
	RootKey string
	Files   map[string]*FileRecord // external files only, keyed by canonical path
	Cycles  []*CycleRecord
	Errors  []*ResolutionError
}

type walker struct {
	gate     *safety.Gate
	files    map[string]*FileRecord
	rootFile *FileRecord
	// inFlight tracks ref-keys (file#pointer) currently being resolved via
	// replaceRef: a $ref reached again before its own resolution finished is
	// a back-edge. visited/inProgress is the second, independent mechanism
	// required by this package's doc comment: inProgress marks a mapping
	// node as an ancestor of itself in the current walk (a direct
	// self-reference reached without going through a fresh $ref, e.g. an
	// allOf entry pointing back at its own enclosing schema); visited marks
	// one whose subtree is fully resolved, safe to short-circuit silently.
	inFlight    map[string]bool
	visited     map[*yaml.Node]bool
	inProgress  map[*yaml.Node]bool
	cycles      []*CycleRecord
	errs        []*ResolutionError
	destructive bool
	logger      *slog.Logger
	polyDepth   int
}

// Resolve walks root in place, replacing every eligible $ref with its
// resolved content. rootFilePath is required: every relative reference is
// resolved against the directory of whichever file is currently being
// walked, not a process-wide working directory.
func Resolve(root *yaml.Node, rootFilePath string, gate *safety.Gate) (*Result, error) {
	return run(root, rootFilePath, gate, true)
}

// DetectCycles performs the identical walk without mutating the tree - a
// non-destructive dry run mirroring the teacher's
// Resolver.CheckForCircularReferences, useful for callers who want to know
// whether a document is safe to resolve before committing to it.
func DetectCycles(root *yaml.Node, rootFilePath string, gate *safety.Gate) (*Result, error) {
	return run(root, rootFilePath, gate, false)
}

func run(root *yaml.Node, rootFilePath string, gate *safety.Gate, destructive bool) (*Result, error) {
	if root == nil {
		return nil, fmt.Errorf("root document is nil")
	}
	rootKey := safety.CanonicalKey(rootFilePath)
	w := &walker{
		gate:        gate,
		files:       make(map[string]*FileRecord),
		inFlight:    make(map[string]bool),
		visited:     make(map[*yaml.Node]bool),
		inProgress:  make(map[*yaml.Node]bool),
		logger:      slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		destructive: destructive,
	}
	w.rootFile = &FileRecord{
		Key:        rootKey,
		Path:       rootFilePath,
		Dir:        filepath.Dir(rootFilePath),
		root:       root,
		Fragments:  map[string]bool{},
		SchemaRefs: map[string]bool{},
	}

	w.visitNode(root, w.rootFile, nil)

	return &Result{
		Root:    root,
		RootKey: rootKey,
		Files:   w.files,
		Cycles:  w.cycles,
		Errors:  w.errs,
	}, nil
}

func (w *walker) visitNode(node *yaml.Node, file *FileRecord, journey []string) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.DocumentNode:
		for _, c := range node.Content {
			w.visitNode(c, file, journey)
		}
	case yaml.MappingNode:
		w.visitMapping(node, file, journey)
	case yaml.SequenceNode:
		children := append([]*yaml.Node(nil), node.Content...)
		for _, c := range children {
			w.visitNode(c, file, journey)
		}
	}
}

func (w *walker) visitMapping(node *yaml.Node, file *FileRecord, journey []string) {
	if w.visited[node] {
		return
	}
	if w.inProgress[node] {
		// identity-based cycle: node is its own ancestor in this walk,
		// reached without a fresh $ref edge (e.g. an allOf/oneOf/anyOf
		// branch pointing back at the schema that contains it). Leave it
		// untouched; the enclosing replaceRef call (if any) still completes
		// and copies whatever of this node's shape was already resolved.
		w.cycles = append(w.cycles, &CycleRecord{
			RefKey:      file.Key + "#<identity>",
			Node:        node,
			Journey:     append([]string(nil), journey...),
			Polymorphic: w.polyDepth > 0,
		})
		return
	}
	w.inProgress[node] = true
	defer func() {
		delete(w.inProgress, node)
		w.visited[node] = true
	}()

	if refText, refOnly, ok := extractRef(node); ok {
		external := isExternalFileReference(refText)
		if refOnly || external {
			w.replaceRef(node, refText, file, journey)
			return
		}
	}

	// snapshot the key set before descent: in-place rewrites during recursion
	// must not corrupt this iteration.
	content := append([]*yaml.Node(nil), node.Content...)
	for i := 0; i+1 < len(content); i += 2 {
		key := content[i].Value
		if key == "allOf" || key == "oneOf" || key == "anyOf" {
			w.polyDepth++
			w.visitNode(content[i+1], file, journey)
			w.polyDepth--
			continue
		}
		w.visitNode(content[i+1], file, journey)
	}
}

func (w *walker) replaceRef(node *yaml.Node, refText string, file *FileRecord, journey []string) {
	decoded, ok := decodeReference(refText)
	if !ok {
		w.fail(ResolutionFailure, node, journey, "empty $ref")
		return
	}

	var targetFile *FileRecord
	if decoded.FilePart == "" {
		targetFile = file
	} else {
		canon, err := w.gate.Resolve(decoded.FilePart, file.Dir)
		if err != nil {
			if ge, ok := err.(*safety.GateError); ok && ge.Kind == safety.IoFailure {
				w.fail(IoFailure, node, journey, "%s", err.Error())
			} else {
				w.fail(PolicyRejection, node, journey, "%s", err.Error())
			}
			return
		}
		key := safety.CanonicalKey(canon)
		rec, lerr := w.loadAndCache(key, canon)
		if lerr != nil {
			w.fail(ParseFailure, node, journey, "%s", lerr.Error())
			return
		}
		targetFile = rec
	}

	refKey := targetFile.Key + "#" + decoded.Pointer
	if w.inFlight[refKey] {
		w.cycles = append(w.cycles, &CycleRecord{
			RefKey:      refKey,
			Node:        node,
			Journey:     append([]string(nil), journey...),
			Polymorphic: w.polyDepth > 0,
		})
		return // back-edge: leave the original $ref text intact, untouched.
	}

	wholeFile := decoded.FilePart != "" && (decoded.Pointer == "" || decoded.Pointer == "/")

	var targetValue *yaml.Node
	var recoveredFrom string
	if wholeFile {
		targetValue = mappingRoot(targetFile.root)
	} else {
		v, perr := walkPointer(mappingRoot(targetFile.root), decoded.Pointer)
		if perr != nil {
			recovered, from, rerr := w.recoverDanglingComponent(decoded.Pointer, file.Key, file.Dir)
			if rerr != nil {
				w.fail(ResolutionFailure, node, journey, "%s", rerr.Error())
				return
			}
			v = recovered
			recoveredFrom = from
		}
		targetValue = v
	}

	if targetValue == nil || targetValue.Kind != yaml.MappingNode {
		w.fail(ResolutionFailure, node, journey, "resolved value for %q is not a mapping", refText)
		return
	}

	w.inFlight[refKey] = true
	nextJourney := append(append([]string(nil), journey...), refKey)

	// force-resolve the target subtree before copying it, so a reference
	// reached for the first time through this $ref is fully materialized -
	// a second reference to the same target later just reuses this work,
	// since visited-identity will short-circuit the recursive call below.
	w.visitNode(targetValue, targetFile, nextJourney)

	w.recordFragment(targetFile, decoded.Pointer, wholeFile)
	if recoveredFrom != "" {
		if rec, ok2 := w.files[recoveredFrom]; ok2 {
			w.recordFragment(rec, decoded.Pointer, false)
		}
	}
	w.scanNestedSchemaRefs(targetValue, targetFile)

	if w.destructive {
		copied := deepCopyNode(targetValue)
		node.Kind = copied.Kind
		node.Tag = copied.Tag
		node.Style = copied.Style
		node.Content = copied.Content
		stripRefKey(node)

		if xref := xResolvedRef(decoded); xref != "" {
			setMapKey(node, "x-resolved-ref", xref)
		}
	}

	delete(w.inFlight, refKey)
}

// xResolvedRef computes the §3(e) marker: the canonical pointer to the
// schema this location originally referenced, when one can be derived.
func xResolvedRef(decoded decodedRef) string {
	if name, ok := schemaNameFromPointer(decoded.Pointer); ok {
		return "#/components/schemas/" + name
	}
	if decoded.FilePart != "" && decoded.Pointer == "" {
		return "#/components/schemas/" + basenameWithoutExt(decoded.FilePart)
	}
	return ""
}

func (w *walker) recordFragment(file *FileRecord, pointer string, wholeFile bool) {
	if file == w.rootFile {
		return
	}
	if wholeFile {
		file.Fragments["/"] = true
		return
	}
	if pointer == "" {
		pointer = "/"
	}
	file.Fragments[pointer] = true
}

// scanNestedSchemaRefs walks an already-resolved fragment looking for any
// residual #/components/schemas/... pointer (cycle back-edges and $refs
// carrying sibling keys survive resolution), recording it against file's transitive schema-ref set so the
// promoter knows which schemas a non-whole-file-referenced file still needs
// to contribute.
func (w *walker) scanNestedSchemaRefs(node *yaml.Node, file *FileRecord) {
	if node == nil {
		return
	}
	if node.Kind == yaml.MappingNode {
		if refText, _, ok := extractRef(node); ok {
			if d, ok2 := decodeReference(refText); ok2 {
				if name, ok3 := schemaNameFromPointer(d.Pointer); ok3 {
					file.SchemaRefs["components/schemas/"+name] = true
				}
			}
		}
	}
	for _, c := range node.Content {
		w.scanNestedSchemaRefs(c, file)
	}
}

func (w *walker) loadAndCache(key, canonicalPath string) (*FileRecord, error) {
	if rec, ok := w.files[key]; ok {
		return rec, nil
	}
	doc, err := docreader.Read(canonicalPath)
	if err != nil {
		return nil, err
	}
	rec := &FileRecord{
		Key:        key,
		Path:       canonicalPath,
		Dir:        filepath.Dir(canonicalPath),
		root:       doc,
		Fragments:  map[string]bool{},
		SchemaRefs: map[string]bool{},
	}
	w.files[key] = rec
	w.logger.Debug("loaded external document", "path", canonicalPath)
	return rec, nil
}

func (w *walker) fail(kind Kind, node *yaml.Node, journey []string, format string, args ...interface{}) {
	w.errs = append(w.errs, newErr(kind, node, journey, format, args...))
}
