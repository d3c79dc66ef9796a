package dashboard

import (
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/store"
	"github.com/davetashner/triage/internal/view"
)

// Filter returns a copy of the current filter.
func (d *Dashboard) Filter() view.Filter {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.filter
	f.Severities = cloneSet(f.Severities)
	return f
}

// Sort returns the current sort.
func (d *Dashboard) Sort() view.Sort {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sort
}

// SetSeverities replaces the severity selection.
func (d *Dashboard) SetSeverities(s severity.Set) {
	d.update(func() { d.filter.Severities = cloneSet(s) })
}

// SetSeverity checks or unchecks one severity.
func (d *Dashboard) SetSeverity(l severity.Level, on bool) {
	d.update(func() {
		if d.filter.Severities == nil {
			d.filter.Severities = severity.AllSet()
		}
		d.filter.Severities[l] = on
	})
}

// SetQuery sets the free-text search.
func (d *Dashboard) SetQuery(q string) {
	d.update(func() { d.filter.Query = q })
}

// SetOnlyIncomplete hides done issues when on.
func (d *Dashboard) SetOnlyIncomplete(on bool) {
	d.update(func() { d.filter.OnlyIncomplete = on })
}

// SetActiveFile restricts the view to file. Selecting the active file again
// clears the restriction. It returns the resulting active file.
func (d *Dashboard) SetActiveFile(file string) string {
	var active string
	d.update(func() {
		if d.filter.ActiveFile == file {
			d.filter.ActiveFile = ""
		} else {
			d.filter.ActiveFile = file
		}
		active = d.filter.ActiveFile
	})
	return active
}

// ClearActiveFile removes the file restriction.
func (d *Dashboard) ClearActiveFile() {
	d.update(func() { d.filter.ActiveFile = "" })
}

// SortBy selects a sort column: the current column flips direction, a new
// column sorts ascending.
func (d *Dashboard) SortBy(k view.Key) view.Sort {
	var s view.Sort
	d.update(func() {
		d.sort = d.sort.Toggle(k)
		s = d.sort
	})
	return s
}

// SetSort sets column and direction directly.
func (d *Dashboard) SetSort(s view.Sort) {
	d.update(func() { d.sort = s })
}

// update applies a filter or sort mutation, then recomputes the view and
// persists the UI state.
func (d *Dashboard) update(mutate func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	mutate()
	d.recompute()
	d.saveUI()
}

func (d *Dashboard) uiState() store.UIState {
	sev := make(map[severity.Level]bool, len(severity.All()))
	for _, l := range severity.All() {
		sev[l] = d.filter.Severities == nil || d.filter.Severities.Has(l)
	}
	return store.UIState{
		Severities:     sev,
		Query:          d.filter.Query,
		OnlyIncomplete: d.filter.OnlyIncomplete,
		SortKey:        string(d.sort.Key),
		SortDir:        d.sort.Dir(),
		ActiveFile:     d.filter.ActiveFile,
	}
}

func (d *Dashboard) applyUI(ui store.UIState) {
	if ui.Severities != nil {
		s := severity.Set{}
		for _, l := range severity.All() {
			on, ok := ui.Severities[l]
			s[l] = !ok || on
		}
		d.filter.Severities = s
	}
	d.filter.Query = ui.Query
	d.filter.OnlyIncomplete = ui.OnlyIncomplete
	d.filter.ActiveFile = ui.ActiveFile
	if k, err := view.ParseKey(ui.SortKey); err == nil {
		d.sort = view.Sort{Key: k, Desc: view.ParseDir(ui.SortDir)}
	}
}

func cloneSet(s severity.Set) severity.Set {
	if s == nil {
		return nil
	}
	out := make(severity.Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
