// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

// Package severity maps the many ways analysis tools express importance onto
// five canonical levels.
package severity

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Level is a canonical severity. The zero value is not a valid level; use
// Normalize or Parse to obtain one.
type Level string

// Canonical levels, most severe first.
const (
	Critical Level = "critical"
	High     Level = "high"
	Normal   Level = "normal"
	Low      Level = "low"
	Info     Level = "info"
)

var ordered = []Level{Critical, High, Normal, Low, Info}

// All returns the canonical levels ordered from most to least severe.
func All() []Level {
	out := make([]Level, len(ordered))
	copy(out, ordered)
	return out
}

// Rank returns the sort position of l: 0 for critical through 4 for info.
// Unknown values rank after info.
func (l Level) Rank() int {
	for i, o := range ordered {
		if o == l {
			return i
		}
	}
	return len(ordered)
}

// String returns the canonical name.
func (l Level) String() string { return string(l) }

// Valid reports whether l is one of the canonical levels.
func (l Level) Valid() bool { return l.Rank() < len(ordered) }

// Parse returns the level with the exact canonical name s (case-insensitive).
// Unlike Normalize it does not accept synonyms.
func Parse(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// synonyms lists the free-text spellings accepted for each level.
var synonyms = map[string]Level{
	"critical": Critical, "blocker": Critical, "fatal": Critical, "error": Critical, "10": Critical,
	"high": High, "major": High, "severe": High, "warning": High, "7": High, "8": High, "9": High,
	"normal": Normal, "medium": Normal, "moderate": Normal, "default": Normal, "5": Normal, "6": Normal,
	"low": Low, "minor": Low, "notice": Low, "3": Low, "4": Low,
}

// Normalize maps a raw severity value to a canonical level. Numbers are
// bucketed by threshold, strings are matched case-insensitively against
// synonym sets. Anything else, including nil, NaN and unknown words, is Info.
func Normalize(v any) Level {
	switch x := v.(type) {
	case nil:
		return Info
	case Level:
		if x.Valid() {
			return x
		}
		return FromString(string(x))
	case string:
		return FromString(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return FromString(x.String())
		}
		return FromScore(f)
	case float64:
		return FromScore(x)
	case float32:
		return FromScore(float64(x))
	case int:
		return FromScore(float64(x))
	case int8:
		return FromScore(float64(x))
	case int16:
		return FromScore(float64(x))
	case int32:
		return FromScore(float64(x))
	case int64:
		return FromScore(float64(x))
	case uint:
		return FromScore(float64(x))
	case uint8:
		return FromScore(float64(x))
	case uint16:
		return FromScore(float64(x))
	case uint32:
		return FromScore(float64(x))
	case uint64:
		return FromScore(float64(x))
	case fmt.Stringer:
		return FromString(x.String())
	default:
		return Info
	}
}

// FromScore buckets a numeric score.
func FromScore(f float64) Level {
	switch {
	case math.IsNaN(f):
		return Info
	case f >= 10:
		return Critical
	case f >= 7:
		return High
	case f >= 4:
		return Normal
	case f >= 2:
		return Low
	default:
		return Info
	}
}

// FromString matches s against the synonym sets.
func FromString(s string) Level {
	if l, ok := synonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return Info
}

// Set is a selection of levels, used by severity filters.
type Set map[Level]bool

// NewSet returns a set containing levels.
func NewSet(levels ...Level) Set {
	s := make(Set, len(levels))
	for _, l := range levels {
		s[l] = true
	}
	return s
}

// AllSet returns a set with every canonical level selected.
func AllSet() Set { return NewSet(ordered...) }

// Has reports whether l is selected.
func (s Set) Has(l Level) bool { return s[l] }

// Levels returns the selected levels in canonical order.
func (s Set) Levels() []Level {
	var out []Level
	for _, l := range ordered {
		if s[l] {
			out = append(out, l)
		}
	}
	return out
}
