// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

// Package dashboard holds the application state of one dashboard session:
// the loaded dataset, completion flags, filter and sort settings, and display
// preferences. Every action mutates that state, recomputes the derived view
// and persists the records it owns, in that order.
//
// A Dashboard is safe for concurrent use; the web and MCP front ends share
// one instance. Observer callbacks run after the lock is released, so they
// may call back into the Dashboard.
package dashboard

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/pipeline"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/store"
	"github.com/davetashner/triage/internal/view"
)

// Observer is notified by the dashboard. Implementations must not block.
type Observer interface {
	// Loaded is called after a report was ingested successfully.
	Loaded(ds *pipeline.Dataset)
	// Notice carries a transient, human-readable message.
	Notice(msg string)
}

// Options configures a new Dashboard. Zero values pick the defaults.
type Options struct {
	Observer Observer
	// Severities is the severity selection used when no UI state is stored.
	Severities severity.Set
	// Sort is the sort used when no UI state is stored.
	Sort view.Sort
	// Theme and Lang are used when no display preference is stored.
	Theme Theme
	Lang  i18n.Lang
}

// Dashboard is the state of one session.
type Dashboard struct {
	mu       sync.Mutex
	store    *store.Store
	observer Observer

	dataset    *pipeline.Dataset
	completion store.Completion
	filter     view.Filter
	sort       view.Sort
	prefs      store.Prefs
	view       *view.View

	// generation increases with every load attempt; an import only applies
	// its result when no newer attempt started meanwhile.
	generation uint64

	defaults Options
}

// New returns a dashboard persisting through st. Call Restore to load the
// previous session.
func New(st *store.Store, opts Options) *Dashboard {
	if opts.Severities == nil {
		opts.Severities = severity.AllSet()
	}
	if opts.Sort.Key == "" {
		opts.Sort = view.DefaultSort()
	}
	if opts.Theme == "" {
		opts.Theme = ThemeLight
	}
	opts.Lang = opts.Lang.OrDefault()
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	d := &Dashboard{
		store:      st,
		observer:   opts.Observer,
		completion: store.Completion{},
		filter:     view.Filter{Severities: cloneSet(opts.Severities)},
		sort:       opts.Sort,
		prefs:      store.Prefs{Theme: string(opts.Theme), Language: string(opts.Lang)},
		defaults:   opts,
	}
	d.recompute()
	return d
}

// Restore loads completion state, UI preferences, display preferences and
// the cached dataset from the store.
func (d *Dashboard) Restore() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.completion = d.store.Completion()
	if ui, ok := d.store.UI(); ok {
		d.applyUI(ui)
	}
	prefs := d.store.Prefs()
	if prefs.Theme != "" {
		d.prefs.Theme = string(ParseThemeOr(prefs.Theme, d.defaults.Theme))
	}
	if prefs.Language != "" {
		d.prefs.Language = string(i18n.Lang(prefs.Language).OrDefault())
	}
	d.dataset = d.store.Dataset()
	d.recompute()
}

// View returns the current derived view. The returned value is never
// modified by the dashboard and may be read without further locking.
func (d *Dashboard) View() *view.View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Dataset returns the loaded dataset, or nil.
func (d *Dashboard) Dataset() *pipeline.Dataset {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dataset
}

// Completion returns a copy of the completion state.
func (d *Dashboard) Completion() store.Completion {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(store.Completion, len(d.completion))
	for k, v := range d.completion {
		out[k] = v
	}
	return out
}

// SetDone marks id done or not done.
func (d *Dashboard) SetDone(id issue.ID, done bool) {
	d.mu.Lock()
	d.completion[id] = done
	d.recompute()
	d.saveCompletion()
	d.mu.Unlock()
}

// Toggle flips the done flag of id and returns the new value.
func (d *Dashboard) Toggle(id issue.ID) bool {
	d.mu.Lock()
	done := !d.completion[id]
	d.completion[id] = done
	d.recompute()
	d.saveCompletion()
	d.mu.Unlock()
	return done
}

// Reset clears all completion flags and the persisted dataset cache. The
// report currently in memory stays loaded, so the full view reappears at
// once; after a restart there is nothing to restore until the next import.
func (d *Dashboard) Reset() {
	d.mu.Lock()
	d.completion = store.Completion{}
	if err := d.store.Reset(); err != nil {
		slog.Warn("cannot clear persisted state", "error", err)
	}
	d.recompute()
	lang := d.lang()
	d.mu.Unlock()
	d.observer.Notice(i18n.T(lang, i18n.MsgReset))
}

// Lang returns the display language.
func (d *Dashboard) Lang() i18n.Lang {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lang()
}

func (d *Dashboard) lang() i18n.Lang { return i18n.Lang(d.prefs.Language).OrDefault() }

// recompute refreshes the derived view. Callers hold d.mu.
func (d *Dashboard) recompute() {
	f := d.filter
	f.Severities = cloneSet(f.Severities)
	d.view = view.Derive(d.dataset, d.completion, f, d.sort)
}

func (d *Dashboard) saveCompletion() {
	logStoreErr(d.store.SaveCompletion(d.completion))
}

func (d *Dashboard) saveUI() {
	logStoreErr(d.store.SaveUI(d.uiState()))
}

func (d *Dashboard) savePrefs() {
	logStoreErr(d.store.SavePrefs(d.prefs))
}

func logStoreErr(err error) {
	if err == nil {
		return
	}
	var se *store.Error
	if errors.As(err, &se) {
		slog.Warn("cannot persist state", "key", se.Key, "op", se.Op, "error", se.Err)
		return
	}
	slog.Warn("cannot persist state", "error", err)
}

type nopObserver struct{}

func (nopObserver) Loaded(*pipeline.Dataset) {}
func (nopObserver) Notice(string)            {}

// Snapshot is everything a renderer needs to draw the dashboard once.
type Snapshot struct {
	View    *view.View
	Dataset *pipeline.Dataset
	Theme   Theme
	Lang    i18n.Lang
}

// Snapshot captures the current state consistently.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		View:    d.view,
		Dataset: d.dataset,
		Theme:   ParseThemeOr(d.prefs.Theme, d.defaults.Theme),
		Lang:    d.lang(),
	}
}
