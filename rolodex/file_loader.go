// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

package rolodex

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileExtension classifies a document file by its name.
type FileExtension int

const (
	YAML FileExtension = iota
	JSON
	UNSUPPORTED
)

// ExtractFileType classifies filename by extension, case-insensitively.
func ExtractFileType(filename string) FileExtension {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAML
	case ".json":
		return JSON
	default:
		return UNSUPPORTED
	}
}

// LocalFile is a single JSON/YAML file discovered under a LocalFS root.
type LocalFile struct {
	filename      string
	name          string
	extension     FileExtension
	Content       []byte
	fullPath      string
	lastModified  time.Time
	readingErrors []error
}

func (l *LocalFile) FullPath() string       { return l.fullPath }
func (l *LocalFile) Name() string           { return l.name }
func (l *LocalFile) Size() int64            { return int64(len(l.Content)) }
func (l *LocalFile) Mode() fs.FileMode      { return fs.FileMode(0) }
func (l *LocalFile) ModTime() time.Time     { return l.lastModified }
func (l *LocalFile) IsDir() bool            { return false }
func (l *LocalFile) Sys() interface{}       { return nil }
func (l *LocalFile) Errors() []error        { return l.readingErrors }

// LocalFS is an eagerly-walked directory of JSON/YAML files, keyed both by
// the absolute path (for fs.FS.Open, used when a caller resolves a file
// directly) and by the path relative to the walk root (for FindFile, used
// by introspection/debugging callers that think in repo-relative terms).
type LocalFS struct {
	baseDirectory string
	Files         []*LocalFile
	byAbsPath     map[string]*LocalFile
	byRelPath     map[string]*LocalFile
	logger        *slog.Logger
	readingErrors []error
}

func (l *LocalFS) Open(name string) (fs.File, error) {
	if !filepath.IsAbs(name) {
		var absErr error
		name, absErr = filepath.Abs(filepath.Join(l.baseDirectory, name))
		if absErr != nil {
			return nil, absErr
		}
	}
	name = filepath.ToSlash(name)
	if f, ok := l.byAbsPath[name]; ok {
		return &localRolodexFile{f: f}, nil
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// FindFile looks a file up by the path it was discovered at relative to the
// walk root, e.g. "components/utils/spec.json".
func (l *LocalFS) FindFile(relPath string) *LocalFile {
	return l.byRelPath[filepath.ToSlash(relPath)]
}

// NewLocalFS walks dirFS collecting every JSON/YAML file under it.
func NewLocalFS(baseDir string, dirFS fs.FS) (*LocalFS, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	lfs := &LocalFS{
		baseDirectory: baseDir,
		byAbsPath:     make(map[string]*LocalFile),
		byRelPath:     make(map[string]*LocalFile),
		logger:        logger,
	}

	walkErr := fs.WalkDir(dirFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		extension := ExtractFileType(p)
		if extension == UNSUPPORTED {
			logger.Debug("skipping non JSON/YAML file", "file", p)
			return nil
		}

		abs, absErr := filepath.Abs(filepath.Join(baseDir, p))
		var readingErrors []error
		if absErr != nil {
			readingErrors = append(readingErrors, absErr)
			lfs.readingErrors = append(lfs.readingErrors, absErr)
			logger.Error("cannot create absolute path for file", "file", p, "error", absErr.Error())
		}

		file, readErr := dirFS.Open(p)
		if readErr != nil {
			lfs.readingErrors = append(lfs.readingErrors, readErr)
			logger.Error("cannot open file", "file", abs, "error", readErr.Error())
			return nil
		}
		defer file.Close()

		modTime := time.Now()
		if stat, statErr := file.Stat(); statErr == nil {
			modTime = stat.ModTime()
		} else {
			readingErrors = append(readingErrors, statErr)
		}

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			lfs.readingErrors = append(lfs.readingErrors, readErr)
			logger.Error("cannot read file data", "file", abs, "error", readErr.Error())
			return nil
		}

		lf := &LocalFile{
			filename:      p,
			name:          filepath.Base(p),
			extension:     extension,
			Content:       data,
			fullPath:      abs,
			lastModified:  modTime,
			readingErrors: readingErrors,
		}
		lfs.Files = append(lfs.Files, lf)
		lfs.byAbsPath[filepath.ToSlash(abs)] = lf
		lfs.byRelPath[filepath.ToSlash(p)] = lf
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return lfs, nil
}

// Files eagerly walks dirFS rooted at baseDir and returns the resulting
// LocalFS, swallowing any walk error into its readingErrors so a caller that
// only wants a best-effort listing (the Path Safety Gate's search-root
// fallback) doesn't need to branch on it.
func Files(baseDir string, dirFS fs.FS) *LocalFS {
	lfs, err := NewLocalFS(baseDir, dirFS)
	if err != nil {
		return &LocalFS{
			baseDirectory: baseDir,
			byAbsPath:     map[string]*LocalFile{},
			byRelPath:     map[string]*LocalFile{},
			readingErrors: []error{err},
		}
	}
	return lfs
}

type localRolodexFile struct {
	f      *LocalFile
	offset int64
}

func (r *localRolodexFile) Close() error               { return nil }
func (r *localRolodexFile) Stat() (fs.FileInfo, error) { return r.f, nil }
func (r *localRolodexFile) Read(b []byte) (int, error) {
	if r.offset >= int64(len(r.f.Content)) {
		return 0, io.EOF
	}
	if r.offset < 0 {
		return 0, &fs.PathError{Op: "read", Path: r.f.name, Err: fs.ErrInvalid}
	}
	n := copy(b, r.f.Content[r.offset:])
	r.offset += int64(n)
	return n, nil
}
