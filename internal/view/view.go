// Package view derives what the dashboard shows from a dataset, the
// completion state and the current filter and sort settings.
//
// Derive is pure: given equal inputs it returns equal views, and it never
// modifies its arguments. It runs after every mutation (load, toggle,
// filter, sort), so it is a single linear pass plus one stable sort.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/pipeline"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/store"
)

// Filter selects which issues are visible. An issue is visible when it
// passes every criterion.
type Filter struct {
	Severities     severity.Set
	Query          string
	OnlyIncomplete bool
	ActiveFile     string
}

// DefaultFilter shows everything.
func DefaultFilter() Filter {
	return Filter{Severities: severity.AllSet()}
}

// Row is a visible issue together with its identity and completion flag.
type Row struct {
	ID    issue.ID `json:"id"`
	Short string   `json:"short"`
	Done  bool     `json:"done"`
	issue.Issue
}

// FileProgress aggregates one file of the dataset.
type FileProgress struct {
	File  string `json:"file"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

// Complete reports whether every issue of the file is done.
func (p FileProgress) Complete() bool { return p.Total > 0 && p.Done == p.Total }

// Counts holds one count per severity level.
type Counts map[severity.Level]int

// View is a read-only snapshot for presentation layers.
type View struct {
	Rows []Row `json:"rows"`
	// Files covers the whole dataset regardless of filters, ordered by
	// descending issue count. Ties keep report order.
	Files []FileProgress `json:"files"`
	// Counts are per severity over the visible rows.
	Counts Counts `json:"counts"`
	// Totals are per severity over the whole dataset.
	Totals Counts `json:"totals"`
	Done   int    `json:"done"`
	Total  int    `json:"total"`
	Filter Filter `json:"-"`
	Sort   Sort   `json:"sort"`
}

// Derive computes the view.
func Derive(ds *pipeline.Dataset, done store.Completion, f Filter, s Sort) *View {
	v := &View{
		Rows:   []Row{},
		Files:  []FileProgress{},
		Counts: newCounts(),
		Totals: newCounts(),
		Filter: f,
		Sort:   s,
	}
	if ds == nil {
		return v
	}

	ids := make([]issue.ID, len(ds.Issues))
	query := strings.ToLower(f.Query)
	for i, it := range ds.Issues {
		id := it.ID()
		ids[i] = id
		isDone := done.Done(id)

		v.Total++
		if isDone {
			v.Done++
		}
		v.Totals[it.Severity]++

		if !f.matches(it, isDone, query) {
			continue
		}
		v.Rows = append(v.Rows, Row{ID: id, Short: id.Short(), Done: isDone, Issue: it})
		v.Counts[it.Severity]++
	}

	sortRows(v.Rows, s)
	v.Files = fileProgress(ds, ids, done)
	return v
}

func (f Filter) matches(it issue.Issue, done bool, query string) bool {
	if f.Severities != nil && !f.Severities.Has(it.Severity) {
		return false
	}
	if f.ActiveFile != "" && it.File != f.ActiveFile {
		return false
	}
	if query != "" && !strings.Contains(strings.ToLower(it.Message+it.Type+it.File), query) {
		return false
	}
	if f.OnlyIncomplete && done {
		return false
	}
	return true
}

func fileProgress(ds *pipeline.Dataset, ids []issue.ID, done store.Completion) []FileProgress {
	if ds.Files == nil {
		return []FileProgress{}
	}
	out := make([]FileProgress, 0, ds.Files.Len())
	for _, g := range ds.Files.Groups {
		p := FileProgress{File: g.File, Total: g.Len()}
		for _, i := range g.Indices {
			if i < len(ids) && done.Done(ids[i]) {
				p.Done++
			}
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b FileProgress) int {
		return cmp.Compare(b.Total, a.Total)
	})
	return out
}

func newCounts() Counts {
	c := make(Counts, len(severity.All()))
	for _, l := range severity.All() {
		c[l] = 0
	}
	return c
}
