// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

// Package rolodex manages local search roots for cross-file reference
// loading. It backs the Path Safety Gate's "try each configured search root
// in order" fallback (spec.md §4.1): each root is registered once, and a
// lookup by a bare reference text tries them in registration order.
//
// Remote HTTP document loading, which earlier versions of this package
// supported, is out of scope here (see DESIGN.md) - this module never
// dereferences a remote URI.
package rolodex

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"time"
)

// RolodexFile is a file handed back by Rolodex.Open, regardless of which
// registered root served it.
type RolodexFile interface {
	GetFileName() string
	GetContent() []byte
	GetFileExtension() FileExtension
	GetFullPath() string
	GetLastModified() time.Time
	GetErrors() []error
}

// Rolodex holds one or more local search roots, each backed by an fs.FS.
type Rolodex struct {
	localFS map[string]fs.FS
	order   []string
}

type rolodexFile struct {
	localFile *LocalFile
}

func (rf *rolodexFile) GetFileName() string             { return rf.localFile.filename }
func (rf *rolodexFile) GetContent() []byte              { return rf.localFile.Content }
func (rf *rolodexFile) GetFileExtension() FileExtension { return rf.localFile.extension }
func (rf *rolodexFile) GetFullPath() string             { return rf.localFile.fullPath }
func (rf *rolodexFile) GetLastModified() time.Time      { return rf.localFile.lastModified }
func (rf *rolodexFile) GetErrors() []error              { return rf.localFile.readingErrors }

// NewRolodex creates an empty Rolodex.
func NewRolodex() *Rolodex {
	return &Rolodex{
		localFS: make(map[string]fs.FS),
	}
}

// AddLocalFS registers a root directory for lookups, in the order roots
// should be tried by Open.
func (r *Rolodex) AddLocalFS(baseDir string, fileSystem fs.FS) {
	if _, exists := r.localFS[baseDir]; !exists {
		r.order = append(r.order, baseDir)
	}
	r.localFS[baseDir] = fileSystem
}

// Roots returns the registered root directories in lookup order.
func (r *Rolodex) Roots() []string {
	return append([]string(nil), r.order...)
}

// Open tries every registered root, in order, for location - first as an
// absolute path joined against the root, then as given - and returns the
// first file found.
func (r *Rolodex) Open(location string) (RolodexFile, error) {
	var errorStack []error

	for _, root := range r.order {
		fsys := r.localFS[root]

		fileLookup := location
		if !filepath.IsAbs(location) {
			fileLookup, _ = filepath.Abs(filepath.Join(root, location))
		}

		f, err := fsys.Open(fileLookup)
		if err != nil {
			f, err = fsys.Open(location)
			if err != nil {
				errorStack = append(errorStack, err)
				continue
			}
		}

		if lrf, ok := f.(*localRolodexFile); ok {
			return &rolodexFile{localFile: lrf.f}, nil
		}

		data, rErr := io.ReadAll(f)
		if rErr != nil {
			errorStack = append(errorStack, rErr)
			continue
		}
		stat, sErr := f.Stat()
		if sErr != nil {
			errorStack = append(errorStack, sErr)
			continue
		}
		if len(data) == 0 {
			continue
		}
		return &rolodexFile{localFile: &LocalFile{
			filename:     filepath.Base(fileLookup),
			name:         filepath.Base(fileLookup),
			extension:    ExtractFileType(fileLookup),
			Content:      data,
			fullPath:     fileLookup,
			lastModified: stat.ModTime(),
		}}, nil
	}

	return nil, errors.Join(errorStack...)
}
