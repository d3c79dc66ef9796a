// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

// Package issue defines the canonical issue model shared by every layer:
// the weakly-typed records parsers produce, the resolved Issue the rest of
// the system consumes, and the content-derived identity used to track
// completion across re-imports.
package issue

import (
	"strconv"

	"github.com/davetashner/triage/internal/severity"
)

// Defaults applied when a field is absent from the source report.
const (
	DefaultType = "Issue"
	UnknownFile = "unknown"
)

// Issue is one normalized finding. Every field is resolved at ingestion time.
type Issue struct {
	Severity severity.Level `json:"severity"`
	Type     string         `json:"type"`
	File     string         `json:"file"`
	Line     int            `json:"line"`
	Message  string         `json:"message"`
}

// ID returns the identity of the issue.
func (i Issue) ID() ID { return Identify(i) }

// Location returns "file:line", or just the file when the line is unknown.
func (i Issue) Location() string {
	if i.Line > 0 {
		return i.File + ":" + strconv.Itoa(i.Line)
	}
	return i.File
}
