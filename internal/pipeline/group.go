package pipeline

import (
	"encoding/json"

	"github.com/davetashner/triage/internal/issue"
)

// FileGroup lists the issues of one file as positions in Dataset.Issues,
// in report order.
type FileGroup struct {
	File    string `json:"file"`
	Indices []int  `json:"indices"`
}

// Len returns the number of issues in the group.
func (g FileGroup) Len() int { return len(g.Indices) }

// FileIndex partitions a dataset's issues by file. Groups are kept in order
// of first appearance in the report.
type FileIndex struct {
	Groups []FileGroup `json:"groups"`

	byName map[string]int
}

// GroupByFile builds a fresh index for issues.
func GroupByFile(issues []issue.Issue) *FileIndex {
	idx := &FileIndex{byName: make(map[string]int)}
	for i, it := range issues {
		g, ok := idx.byName[it.File]
		if !ok {
			g = len(idx.Groups)
			idx.byName[it.File] = g
			idx.Groups = append(idx.Groups, FileGroup{File: it.File})
		}
		idx.Groups[g].Indices = append(idx.Groups[g].Indices, i)
	}
	return idx
}

// UnmarshalJSON restores an index and rebuilds its name lookup, so a
// decoded index is never written to afterwards.
func (x *FileIndex) UnmarshalJSON(data []byte) error {
	var raw struct {
		Groups []FileGroup `json:"groups"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	x.Groups = raw.Groups
	x.byName = make(map[string]int, len(raw.Groups))
	for i, g := range raw.Groups {
		if _, dup := x.byName[g.File]; !dup {
			x.byName[g.File] = i
		}
	}
	return nil
}

// Lookup returns the group for file. It never mutates x, so it is safe on
// an index shared between readers.
func (x *FileIndex) Lookup(file string) (FileGroup, bool) {
	if x == nil {
		return FileGroup{}, false
	}
	if x.byName == nil {
		for _, g := range x.Groups {
			if g.File == file {
				return g, true
			}
		}
		return FileGroup{}, false
	}
	i, ok := x.byName[file]
	if !ok {
		return FileGroup{}, false
	}
	return x.Groups[i], true
}

// Len returns the number of files.
func (x *FileIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.Groups)
}

// Group returns the issues of file, in report order.
func (d *Dataset) Group(file string) []issue.Issue {
	if d == nil {
		return nil
	}
	g, ok := d.Files.Lookup(file)
	if !ok {
		return nil
	}
	out := make([]issue.Issue, 0, g.Len())
	for _, i := range g.Indices {
		out = append(out, d.Issues[i])
	}
	return out
}

// Consistent reports whether the file index matches the issues it indexes.
// A dataset restored from disk is only trusted when this holds.
func (d *Dataset) Consistent() bool {
	if d == nil || d.Files == nil {
		return false
	}
	seen := 0
	for _, g := range d.Files.Groups {
		for _, i := range g.Indices {
			if i < 0 || i >= len(d.Issues) || d.Issues[i].File != g.File {
				return false
			}
			seen++
		}
	}
	return seen == len(d.Issues)
}
