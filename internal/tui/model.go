// Package tui is the terminal front end: a keyboard-driven issue table over
// one dashboard session.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/view"
)

// Model holds the TUI state. Dashboard state lives in the dashboard; the
// model only keeps what the terminal needs to draw it.
type Model struct {
	dash *dashboard.Dashboard

	table  table.Model
	search textinput.Model
	rows   []view.Row

	// Searching is true while the search box has focus.
	Searching bool
	// ConfirmReset is true after the first reset key press.
	ConfirmReset bool
	Notice       string

	width, height int
}

// New returns a model drawing d.
func New(d *dashboard.Dashboard) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 120
	ti.Width = 40

	// Space and "f" are dashboard shortcuts, so the table keeps only the
	// dedicated paging keys.
	km := table.DefaultKeyMap()
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))

	m := Model{
		dash:   d,
		search: ti,
		table: table.New(
			table.WithFocused(true),
			table.WithKeyMap(km),
			table.WithHeight(15),
		),
		width:  100,
		height: 24,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, d *dashboard.Dashboard) error {
	p := tea.NewProgram(New(d), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Selected returns the row under the cursor.
func (m Model) Selected() (view.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return view.Row{}, false
	}
	return m.rows[i], true
}
