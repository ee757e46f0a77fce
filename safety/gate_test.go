// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name string, contents []byte) string {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, contents, 0o644))
	return full
}

func TestGate_Resolve_WithBaseDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "models/user.yaml", []byte("type: object"))

	g := NewGate(nil, 0)
	resolved, err := g.Resolve("models/user.yaml", dir)
	require.NoError(t, err)
	assert.Equal(t, toSlash(filepath.Join(dir, "models/user.yaml")), resolved)
}

func TestGate_Resolve_RejectsPathEscapingRoot(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeTempFile(t, outside, "secret.yaml", []byte("type: object"))

	g := NewGate(nil, 0)
	_, err := g.Resolve("../"+filepath.Base(outside)+"/secret.yaml", dir)
	require.Error(t, err)
	var gerr *GateError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, PolicyRejection, gerr.Kind)
}

func TestGate_Resolve_RejectsDisallowedExtension(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "notes.txt", []byte("hello"))

	g := NewGate(nil, 0)
	_, err := g.Resolve("notes.txt", dir)
	require.Error(t, err)
	var gerr *GateError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, PolicyRejection, gerr.Kind)
}

func TestGate_Resolve_RejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "big.yaml", make([]byte, 128))

	g := NewGate(nil, 64)
	_, err := g.Resolve("big.yaml", dir)
	require.Error(t, err)
	var gerr *GateError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, PolicyRejection, gerr.Kind)
}

func TestGate_Resolve_RejectsRemoteURI(t *testing.T) {
	g := NewGate(nil, 0)
	_, err := g.Resolve("https://example.com/spec.yaml", t.TempDir())
	require.Error(t, err)
}

func TestGate_Resolve_SearchRootsTriedInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeTempFile(t, second, "shared.yaml", []byte("type: object"))

	g := NewGate([]string{first, second}, 0)
	resolved, err := g.Resolve("shared.yaml", "")
	require.NoError(t, err)
	assert.Equal(t, toSlash(filepath.Join(second, "shared.yaml")), resolved)
}

func TestGate_Resolve_NoRootsConfigured(t *testing.T) {
	g := NewGate(nil, 0)
	_, err := g.Resolve("shared.yaml", "")
	require.Error(t, err)
	var gerr *GateError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, PolicyRejection, gerr.Kind)
}

func TestGate_Resolve_MissingFileIsIOFailure(t *testing.T) {
	dir := t.TempDir()
	g := NewGate(nil, 0)
	_, err := g.Resolve("missing.yaml", dir)
	require.Error(t, err)
	var gerr *GateError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, IoFailure, gerr.Kind)
}

func TestCanonicalKey_NormalizesEquivalentPaths(t *testing.T) {
	dir := t.TempDir()
	a := CanonicalKey(filepath.Join(dir, "a", "..", "a", "spec.yaml"))
	b := CanonicalKey(filepath.Join(dir, "a", "spec.yaml"))
	assert.Equal(t, b, a)
}
