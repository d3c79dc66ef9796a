package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/output"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/view"
)

const sample = `{"issues":[
 {"file":"a.php","line":5,"severity":"critical","type":"X","message":"boom"},
 {"file":"a.php","line":9,"severity":"info","type":"Y","message":"note"},
 {"file":"b.php","line":1,"severity":"low","type":"Z","message":"careful"}
]}`

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	return res.Content[0].(*mcp.TextContent).Text
}

func loaded(t *testing.T) *tools {
	t.Helper()
	tl := &tools{dash: newDashboard()}
	_, _, err := tl.handleLoadReport(context.Background(), nil, LoadReportInput{Content: sample})
	require.NoError(t, err)
	return tl
}

func TestHandleLoadReport_FromPath(t *testing.T) {
	tl := &tools{dash: newDashboard()}
	path := writeTestFile(t, t.TempDir(), "report.xml",
		`<checkstyle><file name="x.php"><error line="3" severity="error" message="bad" source="S"/></file></checkstyle>`)

	res, _, err := tl.handleLoadReport(context.Background(), nil, LoadReportInput{Path: path})
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "Loaded 1 issues")
	assert.Equal(t, 1, tl.dash.View().Total)
	resolved, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, resolved, tl.dash.Dataset().Source)
}

func TestHandleLoadReport_Errors(t *testing.T) {
	tl := loaded(t)

	_, _, err := tl.handleLoadReport(context.Background(), nil, LoadReportInput{Content: "{broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid json report")
	assert.Equal(t, 3, tl.dash.View().Total, "failed load keeps the current report")

	_, _, err = tl.handleLoadReport(context.Background(), nil, LoadReportInput{})
	assert.ErrorContains(t, err, "report path is required")

	_, _, err = tl.handleLoadReport(context.Background(), nil, LoadReportInput{Path: t.TempDir()})
	assert.ErrorContains(t, err, "not a regular file")
}

func TestHandleLoadReport_BlankContentIsAWarning(t *testing.T) {
	tl := loaded(t)
	res, _, err := tl.handleLoadReport(context.Background(), nil, LoadReportInput{Content: "  \n\t"})
	require.NoError(t, err)
	assert.Equal(t, "Empty file: nothing loaded.", text(t, res))
	assert.Equal(t, 3, tl.dash.View().Total)
}

func TestHandleLoadReport_Records(t *testing.T) {
	tl := loaded(t)
	res, _, err := tl.handleLoadReport(context.Background(), nil, LoadReportInput{
		Records: []issue.Record{{"level": "error", "path": "c.go", "begin": 4, "text": "bad"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Loaded 1 issues from mcp (0 done).", text(t, res))

	rows := tl.dash.View().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, severity.Critical, rows[0].Severity)
	assert.Equal(t, "c.go", rows[0].File)
	assert.Equal(t, 4, rows[0].Line)
}

func TestHandleLoadReport_Demo(t *testing.T) {
	tl := &tools{dash: newDashboard()}
	res, _, err := tl.handleLoadReport(context.Background(), nil, LoadReportInput{Demo: true})
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "from demo")
}

func TestHandleView_JSONDefault(t *testing.T) {
	tl := loaded(t)
	res, _, err := tl.handleView(context.Background(), nil, ViewInput{})
	require.NoError(t, err)

	var env output.JSONEnvelope
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &env))
	assert.Len(t, env.Issues, 3)
	assert.Equal(t, "critical", string(env.Issues[0].Severity))
}

func TestHandleView_AppliesFilters(t *testing.T) {
	tl := loaded(t)
	res, _, err := tl.handleView(context.Background(), nil, ViewInput{
		Format:     "markdown",
		Severities: "critical, info",
		File:       "a.php",
		Sort:       "line",
		Dir:        "desc",
	})
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "## `a.php` (2)")
	assert.NotContains(t, out, "careful")

	f := tl.dash.Filter()
	assert.Equal(t, "a.php", f.ActiveFile)
	assert.False(t, f.Severities.Has(severity.Low))
	assert.Equal(t, view.Sort{Key: view.KeyLine, Desc: true}, tl.dash.Sort())

	// Same file again keeps the filter; "-" clears it.
	_, _, err = tl.handleView(context.Background(), nil, ViewInput{File: "a.php"})
	require.NoError(t, err)
	assert.Equal(t, "a.php", tl.dash.Filter().ActiveFile)
	_, _, err = tl.handleView(context.Background(), nil, ViewInput{File: "-"})
	require.NoError(t, err)
	assert.Empty(t, tl.dash.Filter().ActiveFile)
}

func TestHandleView_RejectsBadInputWithoutChanges(t *testing.T) {
	tl := loaded(t)
	tests := []struct {
		name  string
		input ViewInput
		want  string
	}{
		{"html format", ViewInput{Format: "html"}, "unsupported format"},
		{"template injection", ViewInput{Format: "{{.}}"}, "unsupported format"},
		{"newline format", ViewInput{Format: "json\nevil"}, "unsupported format"},
		{"unknown severity", ViewInput{Severities: "critical,urgent", Query: "boom"}, "unknown severity"},
		{"unknown sort", ViewInput{Sort: "color", Query: "boom"}, "unknown sort key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tl.handleView(context.Background(), nil, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, tl.dash.Filter().Query)
		})
	}
}

func TestHandleToggle(t *testing.T) {
	tl := loaded(t)

	res, _, err := tl.handleToggle(context.Background(), nil, ToggleInput{ID: "a.php:5"})
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "is now done (1/3 done)")

	res, _, err = tl.handleToggle(context.Background(), nil, ToggleInput{ID: "a.php:5"})
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "is now open")

	rows := tl.dash.View().Rows
	res, _, err = tl.handleToggle(context.Background(), nil, ToggleInput{ID: rows[1].Short, Done: boolPtr(true)})
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "is now done")

	_, _, err = tl.handleToggle(context.Background(), nil, ToggleInput{ID: "zzz.php:1"})
	assert.ErrorContains(t, err, "no issue matches")
}

func TestHandleResetAndExport(t *testing.T) {
	tl := loaded(t)
	_, _, err := tl.handleToggle(context.Background(), nil, ToggleInput{ID: "b.php:1"})
	require.NoError(t, err)

	res, _, err := tl.handleExportState(context.Background(), nil, ExportStateInput{})
	require.NoError(t, err)
	var state map[string]bool
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &state))
	assert.Len(t, state, 1)

	_, _, err = tl.handleReset(context.Background(), nil, ResetInput{})
	assert.ErrorContains(t, err, "confirm")
	assert.Equal(t, 1, tl.dash.View().Done)

	_, _, err = tl.handleReset(context.Background(), nil, ResetInput{Confirm: true})
	require.NoError(t, err)
	assert.Zero(t, tl.dash.View().Done)
	assert.Equal(t, 3, tl.dash.View().Total)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b ,"))
	assert.Empty(t, splitAndTrim(""))
}
