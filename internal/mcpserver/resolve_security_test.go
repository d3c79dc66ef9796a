// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveReportPath_SecurityTraversalAttempts(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"parent traversal", "../../../etc"},
		{"dot dot slash", "../../.."},
		{"encoded traversal literal", "..%2f..%2f.."},
		{"root", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolveReportPath(tt.path)
			if err == nil {
				// Anything that resolves must be a regular file.
				info, statErr := os.Stat(result)
				if statErr == nil {
					assert.True(t, info.Mode().IsRegular(), "resolved path must be a regular file")
				}
			}
		})
	}
}
