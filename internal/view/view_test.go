package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/pipeline"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/store"
)

func dataset() *pipeline.Dataset {
	return pipeline.FromIssues([]issue.Issue{
		{Severity: severity.Info, Type: "Style", File: "b.php", Line: 10, Message: "trailing space"},
		{Severity: severity.Critical, Type: "Undefined", File: "a.php", Line: 3, Message: "undefined var"},
		{Severity: severity.High, Type: "TypeMismatch", File: "b.php", Line: 2, Message: "wrong type"},
		{Severity: severity.Normal, Type: "Deprecated", File: "c.php", Line: 0, Message: "old api"},
		{Severity: severity.Critical, Type: "Undefined", File: "b.php", Line: 7, Message: "undefined fn"},
	}, "")
}

func files(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Location()
	}
	return out
}

func TestDerive_DefaultSortBySeverityStable(t *testing.T) {
	v := Derive(dataset(), nil, DefaultFilter(), DefaultSort())
	assert.Equal(t, []string{"a.php:3", "b.php:7", "b.php:2", "c.php", "b.php:10"}, files(v.Rows))
	assert.Equal(t, 5, v.Total)
	assert.Equal(t, 0, v.Done)
}

func TestDerive_SortKeys(t *testing.T) {
	ds := dataset()

	v := Derive(ds, nil, DefaultFilter(), Sort{Key: KeyLine})
	assert.Equal(t, []string{"c.php", "b.php:2", "a.php:3", "b.php:7", "b.php:10"}, files(v.Rows))

	v = Derive(ds, nil, DefaultFilter(), Sort{Key: KeyLine, Desc: true})
	assert.Equal(t, []string{"b.php:10", "b.php:7", "a.php:3", "b.php:2", "c.php"}, files(v.Rows))

	v = Derive(ds, nil, DefaultFilter(), Sort{Key: KeyFile})
	assert.Equal(t, "a.php", v.Rows[0].File)
	assert.Equal(t, "c.php", v.Rows[4].File)
	assert.Equal(t, []string{"b.php:10", "b.php:2", "b.php:7"}, files(v.Rows[1:4]), "ties keep report order")

	v = Derive(ds, nil, DefaultFilter(), Sort{Key: KeyType})
	assert.Equal(t, "Deprecated", v.Rows[0].Type)

	v = Derive(ds, nil, DefaultFilter(), Sort{Key: KeyMessage})
	assert.Equal(t, "old api", v.Rows[0].Message)
}

func TestDerive_TextSortIsCaseSensitive(t *testing.T) {
	ds := pipeline.FromIssues([]issue.Issue{
		{File: "f", Type: "alpha"}, {File: "f", Type: "Beta"},
	}, "")
	v := Derive(ds, nil, DefaultFilter(), Sort{Key: KeyType})
	assert.Equal(t, "Beta", v.Rows[0].Type, "uppercase sorts before lowercase")
}

func TestSort_Toggle(t *testing.T) {
	s := DefaultSort()
	s = s.Toggle(KeySeverity)
	assert.Equal(t, Sort{Key: KeySeverity, Desc: true}, s)
	s = s.Toggle(KeySeverity)
	assert.Equal(t, Sort{Key: KeySeverity}, s)
	s = s.Toggle(KeyLine).Toggle(KeyLine).Toggle(KeyFile)
	assert.Equal(t, Sort{Key: KeyFile}, s, "a new key resets to ascending")
	assert.Equal(t, "asc", s.Dir())
	assert.True(t, ParseDir("desc"))
	assert.False(t, ParseDir("sideways"))
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("line")
	require.NoError(t, err)
	assert.Equal(t, KeyLine, k)
	_, err = ParseKey("Line")
	assert.Error(t, err)
}

func TestDerive_FilterConjunction(t *testing.T) {
	ds := dataset()

	f := DefaultFilter()
	f.Severities = severity.NewSet(severity.Critical)
	v := Derive(ds, nil, f, DefaultSort())
	assert.Len(t, v.Rows, 2)
	assert.Equal(t, 2, v.Counts[severity.Critical])
	assert.Equal(t, 0, v.Counts[severity.Info])
	assert.Equal(t, 1, v.Totals[severity.Info], "totals ignore filters")

	f.ActiveFile = "b.php"
	v = Derive(ds, nil, f, DefaultSort())
	assert.Equal(t, []string{"b.php:7"}, files(v.Rows))

	f = DefaultFilter()
	f.Query = "UNDEFINED"
	v = Derive(ds, nil, f, DefaultSort())
	assert.Len(t, v.Rows, 2, "query is case-insensitive")

	f.Query = "a.php"
	v = Derive(ds, nil, f, DefaultSort())
	assert.Equal(t, []string{"a.php:3"}, files(v.Rows), "query also matches the file")
}

func TestDerive_NoMatchIsEmptyRegardlessOfCompletion(t *testing.T) {
	ds := dataset()
	f := Filter{
		Severities: severity.NewSet(severity.Critical, severity.High, severity.Normal, severity.Low),
		Query:      "no such text anywhere",
	}
	for _, only := range []bool{false, true} {
		f.OnlyIncomplete = only
		v := Derive(ds, store.Completion{ds.Issues[1].ID(): true}, f, DefaultSort())
		assert.Empty(t, v.Rows)
	}
}

func TestDerive_OnlyIncomplete(t *testing.T) {
	ds := dataset()
	done := store.Completion{}
	for _, it := range ds.Issues {
		done[it.ID()] = true
	}

	f := DefaultFilter()
	f.OnlyIncomplete = true
	v := Derive(ds, done, f, DefaultSort())
	assert.Empty(t, v.Rows)
	assert.Equal(t, 5, v.Done)

	v = Derive(ds, store.Completion{}, f, DefaultSort())
	assert.Len(t, v.Rows, 5, "clearing completion restores the full view")
}

func TestDerive_FileProgress(t *testing.T) {
	ds := dataset()
	done := store.Completion{ds.Issues[0].ID(): true, ds.Issues[4].ID(): true, ds.Issues[3].ID(): false}

	v := Derive(ds, done, DefaultFilter(), DefaultSort())
	require.Len(t, v.Files, 3)
	assert.Equal(t, FileProgress{File: "b.php", Done: 2, Total: 3}, v.Files[0])
	assert.Equal(t, FileProgress{File: "a.php", Done: 0, Total: 1}, v.Files[1], "ties keep report order")
	assert.Equal(t, FileProgress{File: "c.php", Done: 0, Total: 1}, v.Files[2])
	assert.False(t, v.Files[0].Complete())
	assert.Equal(t, 2, v.Done)

	row := v.Rows[1]
	assert.Equal(t, "b.php", row.File)
	assert.True(t, row.Done)
	assert.Equal(t, row.ID.Short(), row.Short)
}

func TestDerive_FileProgressIgnoresFilters(t *testing.T) {
	ds := dataset()
	f := DefaultFilter()
	f.ActiveFile = "a.php"
	v := Derive(ds, nil, f, DefaultSort())
	assert.Len(t, v.Rows, 1)
	assert.Len(t, v.Files, 3)
}

func TestDerive_Idempotent(t *testing.T) {
	ds := dataset()
	done := store.Completion{ds.Issues[2].ID(): true}
	f := DefaultFilter()
	f.Query = "u"
	s := Sort{Key: KeyFile, Desc: true}

	a := Derive(ds, done, f, s)
	b := Derive(ds, done, f, s)
	assert.Equal(t, a, b)
	assert.Equal(t, "trailing space", ds.Issues[0].Message, "inputs are not reordered")
}

func TestDerive_NilDataset(t *testing.T) {
	v := Derive(nil, nil, DefaultFilter(), DefaultSort())
	assert.Empty(t, v.Rows)
	assert.Empty(t, v.Files)
	assert.Equal(t, 0, v.Total)
	assert.Len(t, v.Counts, 5)
}

func TestDerive_EmptySeveritySetHidesAll(t *testing.T) {
	v := Derive(dataset(), nil, Filter{Severities: severity.NewSet()}, DefaultSort())
	assert.Empty(t, v.Rows)
}
