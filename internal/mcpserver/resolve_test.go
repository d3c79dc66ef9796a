// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveReportPath_RegularFile(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	file := writeTestFile(t, dir, "report.json", "[]")

	got, err := ResolveReportPath(file)
	require.NoError(t, err)
	assert.Equal(t, file, got)
}

func TestResolveReportPath_Empty(t *testing.T) {
	_, err := ResolveReportPath("  ")
	assert.ErrorContains(t, err, "report path is required")
}

func TestResolveReportPath_NonexistentPath(t *testing.T) {
	_, err := ResolveReportPath("/nonexistent/path/that/does/not/exist.json")
	assert.ErrorContains(t, err, "cannot resolve path")
}

func TestResolveReportPath_Directory(t *testing.T) {
	_, err := ResolveReportPath(t.TempDir())
	assert.ErrorContains(t, err, "not a regular file")
}

func TestResolveReportPath_NullBytes(t *testing.T) {
	_, err := ResolveReportPath("some\x00path")
	require.Error(t, err, "paths with null bytes must be rejected")
}

func TestResolveReportPath_SymlinkResolved(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	target := writeTestFile(t, dir, "real.xml", "<checkstyle/>")

	link := filepath.Join(t.TempDir(), "link.xml")
	require.NoError(t, os.Symlink(target, link))

	got, err := ResolveReportPath(link)
	require.NoError(t, err)
	assert.Equal(t, target, got, "should resolve symlink to real path")
}

func TestResolveReportPath_SymlinkToDirRejected(t *testing.T) {
	link := filepath.Join(t.TempDir(), "dir-link")
	require.NoError(t, os.Symlink(t.TempDir(), link))

	_, err := ResolveReportPath(link)
	assert.ErrorContains(t, err, "not a regular file")
}
