// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package issue

import "strings"

// Record is one raw, pre-normalization finding as decoded from a report.
// Values are whatever the decoder produced: strings, json.Number, nested
// Records or map[string]any.
type Record map[string]any

// Fallback chains, in priority order, for each canonical field.
var (
	SeverityKeys = []string{"severity", "level"}
	TypeKeys     = []string{"type", "check_name", "rule"}
	FileKeys     = []string{"file", "location.path", "path"}
	LineKeys     = []string{"line", "location.lines.begin", "begin"}
	MessageKeys  = []string{"message", "description", "text"}
)

// Lookup returns the value at a dotted path such as "location.lines.begin".
func (r Record) Lookup(path string) (any, bool) {
	var cur any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		var m map[string]any
		switch x := cur.(type) {
		case Record:
			m = x
		case map[string]any:
			m = x
		default:
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Resolve returns the first value along paths that is present and not
// empty, or def when none is. nil and "" count as empty; zero numbers and
// false do not.
func Resolve(r Record, paths []string, def any) any {
	for _, p := range paths {
		v, ok := r.Lookup(p)
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return def
}
