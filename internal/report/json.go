// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/davetashner/triage/internal/issue"
)

// ParseJSON decodes a JSON report. The top level may be an array of issue
// objects or an object with an "issues" array; any other shape yields no
// records and no error. Array elements that are not objects are skipped.
func ParseJSON(data []byte) ([]issue.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, jsonError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{
			Format: FormatJSON,
			Reason: fmt.Sprintf("unexpected data after top-level value at offset %d", dec.InputOffset()),
			Err:    err,
		}
	}

	var items []any
	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["issues"].([]any)
	}

	records := make([]issue.Record, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			records = append(records, issue.Record(m))
		}
	}
	return records, nil
}

func jsonError(err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{
			Format: FormatJSON,
			Reason: fmt.Sprintf("%s (offset %d)", syn.Error(), syn.Offset),
			Err:    err,
		}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseError{Format: FormatJSON, Reason: "unexpected end of input", Err: err}
	}
	return &ParseError{Format: FormatJSON, Reason: err.Error(), Err: err}
}
