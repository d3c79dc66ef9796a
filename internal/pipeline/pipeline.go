// Package pipeline turns raw report records into a normalized dataset.
//
// Build is the single place where field fallback, severity mapping, line
// coercion and control-sequence stripping happen. It always builds a fresh
// dataset; nothing from a previously loaded report carries over.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/davetashner/triage/internal/issue"
)

// Dataset is one loaded report: its issues in report order plus the file
// grouping derived from them.
type Dataset struct {
	// LoadID changes on every successful load. Presentation layers use it to
	// notice that a different report is now showing.
	LoadID   string        `json:"load_id"`
	LoadedAt time.Time     `json:"loaded_at"`
	Source   string        `json:"source,omitempty"`
	Issues   []issue.Issue `json:"issues"`
	Files    *FileIndex    `json:"files"`
}

// Len returns the number of issues, treating a nil dataset as empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Issues)
}

// Build normalizes records and indexes them by file.
func Build(records []issue.Record, source string) *Dataset {
	issues := Normalize(records)
	if dups := CountDuplicates(issues); dups > 0 {
		slog.Debug("report contains issues with identical identity", "duplicates", dups)
	}
	return FromIssues(issues, source)
}

// FromIssues wraps already-normalized issues in a new dataset.
func FromIssues(issues []issue.Issue, source string) *Dataset {
	if issues == nil {
		issues = []issue.Issue{}
	}
	return &Dataset{
		LoadID:   uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Source:   source,
		Issues:   issues,
		Files:    GroupByFile(issues),
	}
}
