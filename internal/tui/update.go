package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/output"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/view"
)

// Update handles events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if m.Searching {
			return m.updateSearch(msg)
		}
		if m.ConfirmReset {
			m.ConfirmReset = false
			if msg.String() == "y" {
				m.dash.Reset()
				m.Notice = i18n.T(m.dash.Lang(), i18n.MsgReset)
				m.refresh()
			} else {
				m.Notice = ""
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "enter", "x":
			if r, ok := m.Selected(); ok {
				m.dash.Toggle(r.ID)
				m.refresh()
			}
			return m, nil
		case "/":
			m.Searching = true
			m.search.SetValue(m.dash.Filter().Query)
			return m, m.search.Focus()
		case "esc":
			if m.dash.Filter().Query != "" {
				m.dash.SetQuery("")
				m.refresh()
			}
			return m, nil
		case "o":
			m.dash.SetOnlyIncomplete(!m.dash.Filter().OnlyIncomplete)
			m.refresh()
			return m, nil
		case "s":
			m.dash.SortBy(nextKey(m.dash.Sort().Key))
			m.refresh()
			return m, nil
		case "S":
			m.dash.SortBy(m.dash.Sort().Key)
			m.refresh()
			return m, nil
		case "f":
			m.cycleFile()
			m.refresh()
			return m, nil
		case "1", "2", "3", "4", "5":
			lv := severity.All()[int(msg.String()[0]-'1')]
			m.dash.SetSeverity(lv, !m.dash.Filter().Severities.Has(lv))
			m.refresh()
			return m, nil
		case "t":
			m.dash.ToggleTheme()
			m.table.SetStyles(tableStyles(paletteFor(m.dash.Theme())))
			return m, nil
		case "l":
			m.dash.ToggleLanguage()
			m.refresh()
			return m, nil
		case "R":
			m.ConfirmReset = true
			m.Notice = i18n.T(m.dash.Lang(), i18n.MsgResetConfirm) + " (y/N)"
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyEnter:
		m.Searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.Searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.dash.SetQuery("")
		m.refresh()
		return m, nil
	}
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.dash.Filter().Query {
		m.dash.SetQuery(m.search.Value())
		m.refresh()
	}
	return m, tea.Batch(cmd, textinput.Blink)
}

// cycleFile steps the file filter through the dataset's files, ordered as
// in the file list, then back to no filter.
func (m *Model) cycleFile() {
	files := m.dash.View().Files
	if len(files) == 0 {
		return
	}
	active := m.dash.Filter().ActiveFile
	i := slices.IndexFunc(files, func(f view.FileProgress) bool { return f.File == active })
	switch {
	case active == "" || i < 0:
		m.dash.SetActiveFile(files[0].File)
	case i == len(files)-1:
		m.dash.ClearActiveFile()
	default:
		m.dash.SetActiveFile(files[i+1].File)
	}
}

func nextKey(k view.Key) view.Key {
	i := slices.Index(view.Keys, k)
	return view.Keys[(i+1)%len(view.Keys)]
}

// refresh copies the current view into the table, keeping the cursor on the
// same issue when it is still visible.
func (m *Model) refresh() {
	var selected string
	if r, ok := m.Selected(); ok {
		selected = string(r.ID)
	}

	v := m.dash.View()
	lang := m.dash.Lang()
	m.rows = v.Rows
	m.table.SetStyles(tableStyles(paletteFor(m.dash.Theme())))
	m.layout()

	rows := make([]table.Row, len(v.Rows))
	cursor := 0
	for i, r := range v.Rows {
		done := "[ ]"
		if r.Done {
			done = "[x]"
		}
		rows[i] = table.Row{
			done,
			i18n.Severity(lang, r.Severity),
			r.Type,
			output.Location(output.ShortPath(r.File), r.Line),
			r.Message,
		}
		if string(r.ID) == selected {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// layout sizes the table columns to the terminal.
func (m *Model) layout() {
	lang := m.dash.Lang()
	fixed := 5 + 10 + 16 + 28
	msgWidth := max(m.width-fixed-12, 20)
	m.table.SetColumns([]table.Column{
		{Title: i18n.T(lang, i18n.MsgColDone), Width: 5},
		{Title: i18n.T(lang, i18n.MsgColSeverity), Width: 10},
		{Title: i18n.T(lang, i18n.MsgColType), Width: 16},
		{Title: i18n.T(lang, i18n.MsgColFile), Width: 28},
		{Title: i18n.T(lang, i18n.MsgColMessage), Width: msgWidth},
	})
	m.table.SetHeight(max(m.height-8, 3))
}
