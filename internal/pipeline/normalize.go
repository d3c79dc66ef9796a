package pipeline

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/severity"
)

// Normalize resolves every record into a canonical issue, in order.
func Normalize(records []issue.Record) []issue.Issue {
	out := make([]issue.Issue, 0, len(records))
	for _, r := range records {
		out = append(out, NormalizeRecord(r))
	}
	return out
}

// NormalizeRecord resolves one record through the field fallback chains.
func NormalizeRecord(r issue.Record) issue.Issue {
	return issue.Issue{
		Severity: severity.Normalize(issue.Resolve(r, issue.SeverityKeys, nil)),
		Type:     text(issue.Resolve(r, issue.TypeKeys, issue.DefaultType)),
		File:     text(issue.Resolve(r, issue.FileKeys, issue.UnknownFile)),
		Line:     lineNumber(issue.Resolve(r, issue.LineKeys, 0)),
		Message:  ansi.Strip(text(issue.Resolve(r, issue.MessageKeys, ""))),
	}
}

// text renders a resolved value as a string. Composite values (objects,
// arrays) have no sensible text form and become empty.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool, int, int64, float64:
		return fmt.Sprint(x)
	default:
		return ""
	}
}

// lineNumber coerces a resolved value to a non-negative line number.
// Unparseable, negative and non-finite values become 0; fractions truncate.
func lineNumber(v any) int {
	var f float64
	switch x := v.(type) {
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
