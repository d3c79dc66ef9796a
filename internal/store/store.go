// Package store persists dashboard state between sessions.
//
// State is split into four independent records so that each has its own
// lifecycle: completion flags, UI preferences, the cached dataset of the last
// loaded report, and display preferences (theme, language). Reading a record
// never fails: a missing or corrupt record yields its default value and a
// logged warning, and leaves the other records untouched.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/pipeline"
	"github.com/davetashner/triage/internal/severity"
)

// Record keys.
const (
	KeyCompletion = "completion"
	KeyUI         = "ui"
	KeyDataset    = "dataset"
	KeyPrefs      = "prefs"
)

// schemaVersion is written into the UI and dataset records.
const schemaVersion = 1

// Error describes a failed read or write of one record.
type Error struct {
	Key string
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s record: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Completion maps issue identities to their done flag.
type Completion map[issue.ID]bool

// Done reports whether id is marked done.
func (c Completion) Done(id issue.ID) bool { return c[id] }

// UIState is the persisted filter and sort configuration.
type UIState struct {
	Version int `json:"version"`
	// Severities holds the checked state of each severity filter. Levels
	// missing from the map are treated as checked.
	Severities     map[severity.Level]bool `json:"severities,omitempty"`
	Query          string                  `json:"query,omitempty"`
	OnlyIncomplete bool                    `json:"only_incomplete,omitempty"`
	SortKey        string                  `json:"sort_key,omitempty"`
	SortDir        string                  `json:"sort_dir,omitempty"`
	ActiveFile     string                  `json:"active_file,omitempty"`
}

// Prefs holds display preferences.
type Prefs struct {
	Theme    string `json:"theme,omitempty"`
	Language string `json:"language,omitempty"`
}

type cachedDataset struct {
	Version int               `json:"version"`
	Dataset *pipeline.Dataset `json:"dataset"`
}

// Store reads and writes the four state records through a Backend.
type Store struct {
	backend Backend
}

// New returns a Store over backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Open returns a Store persisting to files under dir.
func Open(dir string) *Store {
	return New(NewFileBackend(dir))
}

// Completion loads the completion record.
func (s *Store) Completion() Completion {
	c := Completion{}
	if !s.load(KeyCompletion, &c) || c == nil {
		return Completion{}
	}
	return c
}

// SaveCompletion writes the completion record.
func (s *Store) SaveCompletion(c Completion) error {
	if c == nil {
		c = Completion{}
	}
	return s.save(KeyCompletion, c)
}

// UI loads the UI preference record. ok is false when none was stored or it
// could not be read.
func (s *Store) UI() (ui UIState, ok bool) {
	if !s.load(KeyUI, &ui) {
		return UIState{}, false
	}
	return ui, true
}

// SaveUI writes the UI preference record.
func (s *Store) SaveUI(ui UIState) error {
	ui.Version = schemaVersion
	return s.save(KeyUI, ui)
}

// Dataset loads the cached dataset, or nil when there is none or it does
// not hold together.
func (s *Store) Dataset() *pipeline.Dataset {
	var c cachedDataset
	if !s.load(KeyDataset, &c) || c.Dataset == nil {
		return nil
	}
	if !c.Dataset.Consistent() {
		slog.Warn("discarding inconsistent cached dataset", "key", KeyDataset)
		return nil
	}
	return c.Dataset
}

// SaveDataset writes the dataset cache.
func (s *Store) SaveDataset(d *pipeline.Dataset) error {
	return s.save(KeyDataset, cachedDataset{Version: schemaVersion, Dataset: d})
}

// Prefs loads display preferences.
func (s *Store) Prefs() Prefs {
	var p Prefs
	if !s.load(KeyPrefs, &p) {
		return Prefs{}
	}
	return p
}

// SavePrefs writes display preferences.
func (s *Store) SavePrefs(p Prefs) error {
	return s.save(KeyPrefs, p)
}

// Reset clears completion state and the dataset cache. UI and display
// preferences survive.
func (s *Store) Reset() error {
	var errs []error
	for _, key := range []string{KeyCompletion, KeyDataset} {
		if err := s.backend.Delete(key); err != nil {
			errs = append(errs, &Error{Key: key, Op: "delete", Err: err})
		}
	}
	return errors.Join(errs...)
}

// load decodes a record into v, reporting whether a usable value was read.
func (s *Store) load(key string, v any) bool {
	data, err := s.backend.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		slog.Warn("cannot read state record, using defaults", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("corrupt state record, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &Error{Key: key, Op: "encode", Err: err}
	}
	if err := s.backend.Put(key, data); err != nil {
		return &Error{Key: key, Op: "write", Err: err}
	}
	return nil
}
