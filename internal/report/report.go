// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

// Package report decodes static-analysis reports into raw issue records.
//
// Two formats are supported and told apart by their first non-whitespace
// byte: Checkstyle XML ("<") and JSON (anything else). Decoders only extract
// fields; severity mapping and defaulting happen once, downstream, so both
// formats go through exactly the same normalization.
package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/davetashner/triage/internal/issue"
)

// Format identifies a report encoding.
type Format string

// Supported formats.
const (
	FormatJSON       Format = "json"
	FormatCheckstyle Format = "checkstyle"
)

// ErrEmptyInput is returned for blank input. It is a warning, not a parse
// failure: callers report it and leave their state as it was.
var ErrEmptyInput = errors.New("report is empty")

// ParseError reports a report that could not be decoded.
type ParseError struct {
	Format Format
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s report: %s", e.Format, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// utf8BOM is dropped from the front of a report before decoding.
var utf8BOM = []byte("\xEF\xBB\xBF")

// Detect returns the format of data by sniffing its first non-whitespace
// byte after any UTF-8 byte order mark. ok is false for blank input.
func Detect(data []byte) (f Format, ok bool) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) == 0 {
		return "", false
	}
	if trimmed[0] == '<' {
		return FormatCheckstyle, true
	}
	return FormatJSON, true
}

// Parse decodes data in whichever format it is in.
func Parse(data []byte) ([]issue.Record, Format, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	f, ok := Detect(data)
	if !ok {
		return nil, "", ErrEmptyInput
	}
	var (
		records []issue.Record
		err     error
	)
	switch f {
	case FormatCheckstyle:
		records, err = ParseCheckstyle(data)
	default:
		records, err = ParseJSON(data)
	}
	if err != nil {
		return nil, f, err
	}
	return records, f, nil
}
