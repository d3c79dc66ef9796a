package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/severity"
)

func init() {
	RegisterRenderer(NewTableRenderer())
}

// TableRenderer writes the visible issues and per-file progress as aligned
// terminal tables.
type TableRenderer struct {
	// HideFiles omits the per-file progress table.
	HideFiles bool
	// MessageWidth truncates messages; zero uses the default of 80 cells.
	MessageWidth int
}

// Compile-time interface check.
var _ Renderer = (*TableRenderer)(nil)

// NewTableRenderer returns a TableRenderer with default settings.
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

// Name returns the format name.
func (r *TableRenderer) Name() string {
	return "table"
}

// Render writes a summary line, the issue table and the file table.
func (r *TableRenderer) Render(s dashboard.Snapshot, w io.Writer) error {
	v := s.View
	l := s.Lang

	files := 0
	if s.Dataset != nil && s.Dataset.Files != nil {
		files = s.Dataset.Files.Len()
	}
	summary := i18n.T(l, i18n.MsgSummary, files, v.Total) + " • " +
		ColorProgress(v.Done, v.Total, i18n.T(l, i18n.MsgProgress, v.Done, v.Total))
	if f := v.Filter.ActiveFile; f != "" {
		summary += " • " + i18n.T(l, i18n.MsgFilteredOn, f)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n\n", SectionTitle(i18n.T(l, i18n.MsgTitle)), summary, countsLine(s)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if len(v.Rows) == 0 {
		if _, err := fmt.Fprintf(w, "  %s\n", i18n.T(l, i18n.MsgNoIssues)); err != nil {
			return fmt.Errorf("write empty table: %w", err)
		}
	} else if err := r.issueTable(s).Render(w); err != nil {
		return err
	}

	if r.HideFiles || len(v.Files) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", SectionTitle(i18n.T(l, i18n.MsgFiles))); err != nil {
		return fmt.Errorf("write files heading: %w", err)
	}
	return fileTable(s).Render(w)
}

func (r *TableRenderer) issueTable(s dashboard.Snapshot) *Table {
	l := s.Lang
	labels := make(map[string]severity.Level, len(severity.All()))
	for _, lv := range severity.All() {
		labels[i18n.Severity(l, lv)] = lv
	}
	width := r.MessageWidth
	if width <= 0 {
		width = 80
	}

	tbl := NewTable(
		Column{Header: "ID"},
		Column{Header: i18n.T(l, i18n.MsgColDone)},
		Column{Header: i18n.T(l, i18n.MsgColSeverity), Color: func(v string) string {
			return ColorSeverity(labels[v], v)
		}},
		Column{Header: i18n.T(l, i18n.MsgColType), Max: 32},
		Column{Header: i18n.T(l, i18n.MsgColFile)},
		Column{Header: i18n.T(l, i18n.MsgColMessage), Max: width},
	)
	for _, row := range s.View.Rows {
		done := "[ ]"
		if row.Done {
			done = "[x]"
		}
		msg := strings.Join(strings.Fields(row.Message), " ")
		tbl.AddRow(row.Short, done, i18n.Severity(l, row.Severity), row.Type,
			Location(ShortPath(row.File), row.Line), msg)
	}
	return tbl
}

func fileTable(s dashboard.Snapshot) *Table {
	l := s.Lang
	progress := make(map[string][2]int, len(s.View.Files))
	for _, f := range s.View.Files {
		progress[i18n.T(l, i18n.MsgProgress, f.Done, f.Total)] = [2]int{f.Done, f.Total}
	}
	tbl := NewTable(
		Column{Header: i18n.T(l, i18n.MsgColFile)},
		Column{Header: "", Align: AlignRight, Color: func(v string) string {
			p := progress[v]
			return ColorProgress(p[0], p[1], v)
		}},
	)
	for _, f := range s.View.Files {
		name := ShortPath(f.File)
		if f.File == s.View.Filter.ActiveFile {
			name = "> " + name
		}
		tbl.AddRow(name, i18n.T(l, i18n.MsgProgress, f.Done, f.Total))
	}
	return tbl
}

// countsLine lists visible counts per severity, with the dataset total when
// a filter hides some.
func countsLine(s dashboard.Snapshot) string {
	parts := make([]string, 0, len(severity.All()))
	for _, lv := range severity.All() {
		n, total := s.View.Counts[lv], s.View.Totals[lv]
		text := fmt.Sprintf("%s %d", i18n.Severity(s.Lang, lv), n)
		if n != total {
			text = fmt.Sprintf("%s %d/%d", i18n.Severity(s.Lang, lv), n, total)
		}
		parts = append(parts, ColorSeverity(lv, text))
	}
	return strings.Join(parts, "  ")
}
