package view

import (
	"cmp"
	"fmt"
	"slices"
)

// Key is a sortable column.
type Key string

// Sortable columns.
const (
	KeySeverity Key = "severity"
	KeyType     Key = "type"
	KeyFile     Key = "file"
	KeyLine     Key = "line"
	KeyMessage  Key = "message"
)

// Keys lists the sortable columns in display order.
var Keys = []Key{KeySeverity, KeyType, KeyFile, KeyLine, KeyMessage}

// ParseKey validates a column name.
func ParseKey(s string) (Key, error) {
	for _, k := range Keys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (want severity, type, file, line or message)", s)
}

// Sort is a column and direction.
type Sort struct {
	Key  Key  `json:"key"`
	Desc bool `json:"desc"`
}

// DefaultSort orders by severity, most severe first.
func DefaultSort() Sort { return Sort{Key: KeySeverity} }

// Toggle returns the sort after the user selects key: selecting the current
// key flips the direction, selecting a different key sorts ascending by it.
func (s Sort) Toggle(key Key) Sort {
	if s.Key == key {
		return Sort{Key: key, Desc: !s.Desc}
	}
	return Sort{Key: key}
}

// Dir returns "asc" or "desc".
func (s Sort) Dir() string {
	if s.Desc {
		return "desc"
	}
	return "asc"
}

// ParseDir converts "asc"/"desc" to a descending flag. Anything else is
// ascending.
func ParseDir(dir string) bool { return dir == "desc" }

func sortRows(rows []Row, s Sort) {
	compare := comparator(s.Key)
	slices.SortStableFunc(rows, func(a, b Row) int {
		c := compare(a, b)
		if s.Desc {
			return -c
		}
		return c
	})
}

func comparator(k Key) func(a, b Row) int {
	switch k {
	case KeyType:
		return func(a, b Row) int { return cmp.Compare(a.Type, b.Type) }
	case KeyFile:
		return func(a, b Row) int { return cmp.Compare(a.File, b.File) }
	case KeyLine:
		return func(a, b Row) int { return cmp.Compare(a.Line, b.Line) }
	case KeyMessage:
		return func(a, b Row) int { return cmp.Compare(a.Message, b.Message) }
	default:
		return func(a, b Row) int { return cmp.Compare(a.Severity.Rank(), b.Severity.Rank()) }
	}
}
