// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

// Package loader wires the Path Safety Gate, Document Reader, Structural
// Validator, Reference Resolver and Component Promoter into the single
// batch pipeline described by this module: read one root document, resolve
// every reference it contains - local or external - into a single flattened
// tree, and promote everything touched along the way into components.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pb33f/libopenapi/datamodel"
	"github.com/pb33f/libopenapi/docreader"
	"github.com/pb33f/libopenapi/internal/errorutils"
	"github.com/pb33f/libopenapi/promoter"
	"github.com/pb33f/libopenapi/safety"
	"github.com/pb33f/libopenapi/specresolver"
	"github.com/pb33f/libopenapi/structure"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

// Result is what a caller gets back from a successful Load: the single
// resolved document, plus the diagnostics gathered along the way.
type Result struct {
	// Root is the resolved document tree. Downstream code generators can
	// treat it as though every definition had originally been written
	// inline in one file.
	Root *yaml.Node

	// ValidationDefects are the structural defects found by the validator
	// on the pre-resolution tree (§4.3). Non-blocking unless
	// DocumentConfiguration.StrictValidation was set.
	ValidationDefects []*structure.Defect

	// Cycles records every back-edge the resolver refused to follow.
	Cycles []*specresolver.CycleRecord

	// ResolutionErrors are the resolver's own failures (distinct from
	// validation defects): bad pointers, policy rejections, IO failures.
	ResolutionErrors []*specresolver.ResolutionError

	// PromotedSchemas lists every schema name the component promoter
	// inserted or overwrote in Root's components.schemas.
	PromotedSchemas []string

	// SpecInfo carries the root document's detected OpenAPI/Swagger/AsyncAPI
	// type and version, the way datamodel.ExtractSpecInfo reports it for the
	// full model-building pipeline. Its SpecType is empty if the root
	// document's type couldn't be identified - that alone never aborts Load,
	// since resolving references doesn't require knowing which spec family
	// produced them.
	SpecInfo *datamodel.SpecInfo
}

// Query runs a JSONPath expression against the resolved document, using the
// same yamlpath engine utils.FindNodes wraps for raw bytes - exposed here so
// callers holding an already-parsed Result don't need to round-trip through
// a re-serialized byte slice just to spot-check a path.
func (r *Result) Query(jsonPath string) ([]*yaml.Node, error) {
	p, err := yamlpath.NewPath(jsonPath)
	if err != nil {
		return nil, err
	}
	return p.Find(r.Root)
}

// Load runs the full pipeline against rootPath: gate it, read it, validate
// its pre-resolution shape, resolve every reference, then promote whatever
// was touched along the way. A ResolutionFailure or ParseFailure aborts the
// whole operation; validation defects do not, unless config.StrictValidation
// is set.
func Load(rootPath string, config *datamodel.DocumentConfiguration) (*Result, error) {
	if config == nil && strings.TrimSpace(rootPath) == "" {
		return nil, fmt.Errorf("cannot load: %w", datamodel.ErrNoConfiguration)
	}
	if config == nil {
		config = &datamodel.DocumentConfiguration{}
	}
	if strings.TrimSpace(rootPath) == "" {
		return nil, fmt.Errorf("cannot load: %w", datamodel.ErrEmptyReference)
	}

	roots := append([]string(nil), config.SearchRoots...)
	if config.BasePath != "" {
		roots = append(roots, config.BasePath)
	}
	gate := safety.NewGate(roots, config.MaxFileSize)

	canonicalRoot, err := gate.Resolve(rootPath, filepath.Dir(rootPath))
	if err != nil {
		return nil, fmt.Errorf("cannot load root document: %w", err)
	}

	root, err := docreader.Read(canonicalRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot read root document: %w", err)
	}

	var specInfo *datamodel.SpecInfo
	if raw, readErr := os.ReadFile(canonicalRoot); readErr == nil {
		// bypass is always true here: a document whose type/version can't be
		// identified is still resolved - structure.Validate, not this step,
		// is what decides whether the document's shape is acceptable.
		if info, infoErr := datamodel.ExtractSpecInfoWithDocumentCheck(raw, true); infoErr == nil {
			specInfo = info
		}
	}

	defects := structure.Validate(root)
	if config.StrictValidation && len(defects) > 0 {
		return nil, fmt.Errorf("document failed structural validation with %d defect(s): %s: %w", len(defects), defects[0].Error(), datamodel.ErrStrictValidationFailed)
	}

	result, err := specresolver.Resolve(root, canonicalRoot, gate)
	if err != nil {
		return nil, fmt.Errorf("resolution failed: %w", err)
	}
	if len(result.Errors) > 0 {
		asErrs := make([]error, len(result.Errors))
		for i, e := range result.Errors {
			asErrs[i] = e
		}
		return nil, fmt.Errorf("resolution failed: %w", errorutils.Join(asErrs...))
	}

	promoted := promoter.Promote(result)

	return &Result{
		Root:              result.Root,
		ValidationDefects: defects,
		Cycles:            result.Cycles,
		ResolutionErrors:  result.Errors,
		PromotedSchemas:   promoted,
		SpecInfo:          specInfo,
	}, nil
}
