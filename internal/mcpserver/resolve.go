// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the dashboard actions as tools over stdio transport.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveReportPath resolves a report path to an absolute, symlink-free
// path. It returns an error unless the path names a regular file.
func ResolveReportPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("report path is required")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("cannot resolve path %q: contains NUL byte", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q is not a regular file", path)
	}
	return absPath, nil
}
