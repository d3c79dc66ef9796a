package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/view"
)

func init() {
	RegisterRenderer(NewJSONRenderer())
}

// JSONEnvelope wraps the visible issues with aggregates and metadata.
type JSONEnvelope struct {
	Issues   []view.Row          `json:"issues"`
	Files    []view.FileProgress `json:"files"`
	Counts   view.Counts         `json:"counts"`
	Totals   view.Counts         `json:"totals"`
	Metadata JSONMetadata        `json:"metadata"`
}

// JSONMetadata describes the loaded report and the view settings.
type JSONMetadata struct {
	Source      string    `json:"source,omitempty"`
	LoadID      string    `json:"load_id,omitempty"`
	LoadedAt    string    `json:"loaded_at,omitempty"`
	Visible     int       `json:"visible"`
	Done        int       `json:"done"`
	Total       int       `json:"total"`
	Sort        view.Sort `json:"sort"`
	Query       string    `json:"query,omitempty"`
	ActiveFile  string    `json:"active_file,omitempty"`
	GeneratedAt string    `json:"generated_at"`
}

// JSONRenderer writes the view as a JSON document with a metadata envelope.
type JSONRenderer struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Renderer = (*JSONRenderer)(nil)

// NewJSONRenderer returns a new JSONRenderer with default settings.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Name returns the format name.
func (f *JSONRenderer) Name() string {
	return "json"
}

// Envelope builds the document Render writes.
func (f *JSONRenderer) Envelope(s dashboard.Snapshot) JSONEnvelope {
	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}
	v := s.View
	env := JSONEnvelope{
		Issues: v.Rows,
		Files:  v.Files,
		Counts: v.Counts,
		Totals: v.Totals,
		Metadata: JSONMetadata{
			Visible:     len(v.Rows),
			Done:        v.Done,
			Total:       v.Total,
			Sort:        v.Sort,
			Query:       v.Filter.Query,
			ActiveFile:  v.Filter.ActiveFile,
			GeneratedAt: now.UTC().Format(time.RFC3339),
		},
	}
	if ds := s.Dataset; ds != nil {
		env.Metadata.Source = ds.Source
		env.Metadata.LoadID = ds.LoadID
		env.Metadata.LoadedAt = ds.LoadedAt.UTC().Format(time.RFC3339)
	}
	return env
}

// Render writes the envelope to w. Output is pretty-printed unless Compact
// is set or w is a pipe or regular file.
func (f *JSONRenderer) Render(s dashboard.Snapshot, w io.Writer) error {
	env := f.Envelope(s)

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(env)
	} else {
		data, err = json.MarshalIndent(env, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}
	return nil
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value.
// Otherwise, auto-detect: pretty-print for TTYs, compact for pipes.
func (f *JSONRenderer) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}
	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false
		}
		return fi.Mode()&os.ModeCharDevice == 0
	}
	// Non-file writers (buffers in tests, HTTP responses) get pretty output.
	return false
}
