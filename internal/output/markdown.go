package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/view"
)

func init() {
	RegisterRenderer(NewMarkdownRenderer())
}

// MarkdownRenderer writes the visible issues as a Markdown checklist grouped
// by file, suitable for pasting into an issue tracker.
type MarkdownRenderer struct{}

// Compile-time interface check.
var _ Renderer = (*MarkdownRenderer)(nil)

// NewMarkdownRenderer returns a new MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Name returns the format name.
func (m *MarkdownRenderer) Name() string {
	return "markdown"
}

// Render writes all visible issues as a grouped Markdown document to w.
//
// The output includes:
//   - A title heading and a progress line
//   - A severity distribution table
//   - One section per file, in view order, with a checklist of issues
func (m *MarkdownRenderer) Render(s dashboard.Snapshot, w io.Writer) error {
	v := s.View
	l := s.Lang

	if _, err := fmt.Fprintf(w, "# %s\n\n**%s** | %s\n\n",
		i18n.T(l, i18n.MsgTitle), i18n.T(l, i18n.MsgProgress, v.Done, v.Total), sourceName(s)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := writeSeverityTable(w, s); err != nil {
		return err
	}
	if len(v.Rows) == 0 {
		if _, err := fmt.Fprintf(w, "_%s_\n", i18n.T(l, i18n.MsgNoIssues)); err != nil {
			return fmt.Errorf("write empty: %w", err)
		}
		return nil
	}

	order, groups := groupRows(v.Rows)
	for _, file := range order {
		if err := writeFileSection(w, s, file, groups[file]); err != nil {
			return err
		}
	}
	return nil
}

func sourceName(s dashboard.Snapshot) string {
	if s.Dataset == nil || s.Dataset.Source == "" {
		return "-"
	}
	return "`" + s.Dataset.Source + "`"
}

func writeSeverityTable(w io.Writer, s dashboard.Snapshot) error {
	l := s.Lang
	if _, err := fmt.Fprintf(w, "| %s | # |\n|---|---|\n", i18n.T(l, i18n.MsgColSeverity)); err != nil {
		return fmt.Errorf("write severity table: %w", err)
	}
	for _, lv := range severity.All() {
		if _, err := fmt.Fprintf(w, "| %s | %d |\n", i18n.Severity(l, lv), s.View.Counts[lv]); err != nil {
			return fmt.Errorf("write severity table: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write severity table: %w", err)
	}
	return nil
}

// groupRows groups rows by file, keeping files in order of first
// appearance so the current sort carries over.
func groupRows(rows []view.Row) ([]string, map[string][]view.Row) {
	var order []string
	groups := make(map[string][]view.Row)
	for _, r := range rows {
		if _, ok := groups[r.File]; !ok {
			order = append(order, r.File)
		}
		groups[r.File] = append(groups[r.File], r)
	}
	return order, groups
}

func writeFileSection(w io.Writer, s dashboard.Snapshot, file string, rows []view.Row) error {
	if _, err := fmt.Fprintf(w, "## `%s` (%d)\n\n", file, len(rows)); err != nil {
		return fmt.Errorf("write file heading: %w", err)
	}
	for _, r := range rows {
		box := " "
		if r.Done {
			box = "x"
		}
		if _, err := fmt.Fprintf(w, "- [%s] **%s** `%s` %s: %s\n",
			box, i18n.Severity(s.Lang, r.Severity), r.Location(), r.Type, escapeMarkdown(r.Message)); err != nil {
			return fmt.Errorf("write issue: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write section end: %w", err)
	}
	return nil
}

var markdownEscaper = strings.NewReplacer(
	"\n", " ",
	"\r", "",
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
