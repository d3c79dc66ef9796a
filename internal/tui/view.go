package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/severity"
)

type palette struct {
	title     lipgloss.Style
	dim       lipgloss.Style
	notice    lipgloss.Style
	header    lipgloss.Color
	selectFg  lipgloss.Color
	selectBg  lipgloss.Color
	levels    map[severity.Level]lipgloss.Color
	checkedOn lipgloss.Style
}

var (
	lightPalette = palette{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#2563EB")).Padding(0, 1),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("#B45309")),
		header:    lipgloss.Color("#1E3A8A"),
		selectFg:  lipgloss.Color("#FFFFFF"),
		selectBg:  lipgloss.Color("#2563EB"),
		checkedOn: lipgloss.NewStyle().Bold(true),
		levels: map[severity.Level]lipgloss.Color{
			severity.Critical: "#B91C1C",
			severity.High:     "#C2410C",
			severity.Normal:   "#A16207",
			severity.Low:      "#15803D",
			severity.Info:     "#1D4ED8",
		},
	}

	darkPalette = palette{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		header:    lipgloss.Color("63"),
		selectFg:  lipgloss.Color("229"),
		selectBg:  lipgloss.Color("57"),
		checkedOn: lipgloss.NewStyle().Bold(true),
		levels: map[severity.Level]lipgloss.Color{
			severity.Critical: "#F87171",
			severity.High:     "#FB923C",
			severity.Normal:   "#FACC15",
			severity.Low:      "#4ADE80",
			severity.Info:     "#60A5FA",
		},
	}
)

func paletteFor(t dashboard.Theme) palette {
	if t == dashboard.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

func tableStyles(p palette) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.header).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(p.selectFg).
		Background(p.selectBg).
		Bold(false)
	return s
}

// View renders the screen.
func (m Model) View() string {
	snap := m.dash.Snapshot()
	v := snap.View
	lang := snap.Lang
	p := paletteFor(snap.Theme)

	var b strings.Builder

	files := 0
	source := ""
	if ds := snap.Dataset; ds != nil {
		source = ds.Source
		if ds.Files != nil {
			files = ds.Files.Len()
		}
	}
	b.WriteString(p.title.Render(i18n.T(lang, i18n.MsgTitle)))
	if source != "" {
		b.WriteString(" " + p.dim.Render(source))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s • %s\n",
		i18n.T(lang, i18n.MsgSummary, files, v.Total),
		i18n.T(lang, i18n.MsgProgress, v.Done, v.Total))

	chips := make([]string, 0, len(severity.All()))
	for i, lv := range severity.All() {
		box := "[ ]"
		style := p.dim
		if v.Filter.Severities.Has(lv) {
			box = "[x]"
			style = p.checkedOn.Foreground(p.levels[lv])
		}
		chips = append(chips, style.Render(fmt.Sprintf("%d%s %s %d/%d", i+1, box, i18n.Severity(lang, lv), v.Counts[lv], v.Totals[lv])))
	}
	b.WriteString(strings.Join(chips, "  ") + "\n")

	var status []string
	if v.Filter.ActiveFile != "" {
		status = append(status, i18n.T(lang, i18n.MsgFilteredOn, v.Filter.ActiveFile))
	}
	if v.Filter.OnlyIncomplete {
		status = append(status, i18n.T(lang, i18n.MsgOnlyOpen))
	}
	if v.Filter.Query != "" && !m.Searching {
		status = append(status, "/"+v.Filter.Query)
	}
	status = append(status, fmt.Sprintf("%s %s", v.Sort.Key, v.Sort.Dir()))
	b.WriteString(p.dim.Render(strings.Join(status, " • ")) + "\n\n")

	if len(v.Rows) == 0 {
		b.WriteString("  " + i18n.T(lang, i18n.MsgNoIssues) + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	if m.Searching {
		b.WriteString("\n" + m.search.View() + "\n")
	} else if m.Notice != "" {
		b.WriteString("\n" + p.notice.Render(m.Notice) + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(p.dim.Render(i18n.T(lang, i18n.MsgHelpShortcuts)))
	return b.String()
}
