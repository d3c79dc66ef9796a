package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/output"
	"github.com/davetashner/triage/internal/report"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/source"
	"github.com/davetashner/triage/internal/view"
)

// LoadReportInput is the input schema for the load_report MCP tool.
type LoadReportInput struct {
	Path    string `json:"path,omitempty" jsonschema:"Path of a JSON or Checkstyle XML report to load"`
	Content string `json:"content,omitempty" jsonschema:"Report content, used instead of path"`
	Demo    bool   `json:"demo,omitempty" jsonschema:"Load the bundled demo report"`
	// Records are issue objects already decoded by the client. Field names
	// follow the JSON report format, fallbacks included.
	Records []issue.Record `json:"records,omitempty" jsonschema:"Issue objects to load directly, with the same fields as a JSON report"`
}

// ViewInput is the input schema for the view MCP tool. Set fields update
// the persisted filter and sort before the view is rendered.
type ViewInput struct {
	Format         string `json:"format,omitempty" jsonschema:"Output format: json, markdown, table (default: json)"`
	Severities     string `json:"severities,omitempty" jsonschema:"Comma-separated severities to show (critical, high, normal, low, info)"`
	Query          string `json:"query,omitempty" jsonschema:"Case-insensitive text to search in message, type and file"`
	OnlyIncomplete *bool  `json:"only_incomplete,omitempty" jsonschema:"Hide issues already marked done"`
	File           string `json:"file,omitempty" jsonschema:"Show only this file; '-' clears the file filter"`
	Sort           string `json:"sort,omitempty" jsonschema:"Sort key: severity, type, file, line, message"`
	Dir            string `json:"dir,omitempty" jsonschema:"Sort direction: asc or desc"`
}

// ToggleInput is the input schema for the toggle MCP tool.
type ToggleInput struct {
	ID   string `json:"id" jsonschema:"Issue ID, short ID prefix, or file:line"`
	Done *bool  `json:"done,omitempty" jsonschema:"Set this completion state instead of flipping it"`
}

// ResetInput is the input schema for the reset MCP tool.
type ResetInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true; clears every completion flag"`
}

// ExportStateInput is the input schema for the export_state MCP tool.
type ExportStateInput struct{}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// tools binds the tool handlers to one dashboard.
type tools struct {
	dash *dashboard.Dashboard
}

// registerTools adds all dashboard tools to the MCP server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_report",
		Description: "Load a static-analysis report (JSON or Checkstyle XML) into the dashboard, replacing the current one. Completion flags of issues that reappear are kept.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    false,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.handleLoadReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view",
		Description: "Show the filtered and sorted issue list with per-severity counts, per-file progress and overall progress. Optional fields change the filter first.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    false,
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, t.handleView)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle",
		Description: "Flip or set the done flag of one issue, addressed by ID, short ID prefix, or file:line.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    false,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.handleToggle)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset",
		Description: "Clear every completion flag and the cached report. The loaded report stays visible.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    false,
			DestructiveHint: boolPtr(true),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.handleReset)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_state",
		Description: "Export the completion flags as a JSON object mapping issue ID to done.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.handleExportState)
}

func (t *tools) handleLoadReport(_ context.Context, _ *mcp.CallToolRequest, input LoadReportInput) (*mcp.CallToolResult, any, error) {
	var (
		data []byte
		name string
	)
	switch {
	case input.Demo:
		data, name = source.Demo(), source.DemoSource
	case len(input.Records) > 0:
		t.dash.IngestRecords(input.Records, "mcp")
		return loadedResult(t.dash, "mcp"), nil, nil
	case input.Content != "":
		data, name = []byte(input.Content), "mcp"
	default:
		path, err := ResolveReportPath(input.Path)
		if err != nil {
			return nil, nil, err
		}
		if data, err = source.ReadFile(path); err != nil {
			return nil, nil, err
		}
		name = path
	}

	err := t.dash.Ingest(data, name)
	if errors.Is(err, report.ErrEmptyInput) {
		return textResult(i18n.T(t.dash.Lang(), i18n.MsgEmpty) + ": nothing loaded."), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load report: %w", err)
	}
	return loadedResult(t.dash, name), nil, nil
}

func loadedResult(d *dashboard.Dashboard, name string) *mcp.CallToolResult {
	v := d.View()
	slog.Debug("mcp load_report", "source", name, "issues", v.Total)
	return textResult(fmt.Sprintf("Loaded %d issues from %s (%d done).", v.Total, name, v.Done))
}

func (t *tools) handleView(_ context.Context, _ *mcp.CallToolRequest, input ViewInput) (*mcp.CallToolResult, any, error) {
	format := "json"
	if input.Format != "" {
		format = input.Format
	}
	if format == "html" {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}
	r, err := output.GetRenderer(format)
	if err != nil {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}

	if err := t.applyFilter(input); err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := r.Render(t.dash.Snapshot(), &buf); err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", format, err)
	}
	return textResult(buf.String()), nil, nil
}

// applyFilter validates every field before changing anything, so a bad
// request leaves the dashboard untouched.
func (t *tools) applyFilter(input ViewInput) error {
	var levels severity.Set
	if input.Severities != "" {
		levels = severity.NewSet()
		for _, name := range splitAndTrim(input.Severities) {
			l, ok := severity.Parse(name)
			if !ok {
				return fmt.Errorf("unknown severity %q", name)
			}
			levels[l] = true
		}
		for _, l := range severity.All() {
			if !levels[l] {
				levels[l] = false
			}
		}
	}
	var sort *view.Sort
	if input.Sort != "" {
		k, err := view.ParseKey(input.Sort)
		if err != nil {
			return err
		}
		sort = &view.Sort{Key: k, Desc: view.ParseDir(input.Dir)}
	}

	if levels != nil {
		t.dash.SetSeverities(levels)
	}
	if input.Query != "" {
		t.dash.SetQuery(input.Query)
	}
	if input.OnlyIncomplete != nil {
		t.dash.SetOnlyIncomplete(*input.OnlyIncomplete)
	}
	switch input.File {
	case "":
	case "-":
		t.dash.ClearActiveFile()
	default:
		if t.dash.Filter().ActiveFile != input.File {
			t.dash.SetActiveFile(input.File)
		}
	}
	if sort != nil {
		t.dash.SetSort(*sort)
	}
	return nil
}

func (t *tools) handleToggle(_ context.Context, _ *mcp.CallToolRequest, input ToggleInput) (*mcp.CallToolResult, any, error) {
	id, err := t.dash.Resolve(input.ID)
	if err != nil {
		return nil, nil, err
	}
	var done bool
	if input.Done != nil {
		done = *input.Done
		t.dash.SetDone(id, done)
	} else {
		done = t.dash.Toggle(id)
	}

	state := "open"
	if done {
		state = "done"
	}
	v := t.dash.View()
	return textResult(fmt.Sprintf("%s is now %s (%d/%d done).", id.Short(), state, v.Done, v.Total)), nil, nil
}

func (t *tools) handleReset(_ context.Context, _ *mcp.CallToolRequest, input ResetInput) (*mcp.CallToolResult, any, error) {
	if !input.Confirm {
		return nil, nil, errors.New("reset requires confirm: true")
	}
	t.dash.Reset()
	return textResult("All completion flags cleared."), nil, nil
}

func (t *tools) handleExportState(_ context.Context, _ *mcp.CallToolRequest, _ ExportStateInput) (*mcp.CallToolResult, any, error) {
	var buf bytes.Buffer
	if err := t.dash.ExportCompletion(&buf); err != nil {
		return nil, nil, err
	}
	return textResult(buf.String()), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace from each element.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
