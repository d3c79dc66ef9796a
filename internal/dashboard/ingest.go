package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/pipeline"
	"github.com/davetashner/triage/internal/report"
)

// ErrSuperseded is returned by Import when a newer load started while it was
// reading its input. The result of the older import is discarded.
var ErrSuperseded = errors.New("import superseded by a newer one")

// Loader produces report text and a description of where it came from.
type Loader func(ctx context.Context) (data []byte, source string, err error)

// Ingest parses data and, on success, replaces the loaded report with it.
//
// Blank input returns report.ErrEmptyInput and a parse failure returns a
// *report.ParseError; in both cases a notice is emitted and no state
// changes.
func (d *Dashboard) Ingest(data []byte, source string) error {
	return d.ingest(data, source, d.nextGeneration())
}

// IngestRecords loads already-decoded records.
func (d *Dashboard) IngestRecords(records []issue.Record, source string) {
	d.apply(pipeline.Build(records, source), d.nextGeneration())
}

// Import runs load and ingests its result. When another Ingest or Import
// starts before load returns, the result is dropped and ErrSuperseded is
// returned. Load errors are reported as a notice and returned unchanged.
func (d *Dashboard) Import(ctx context.Context, load Loader) error {
	gen := d.nextGeneration()
	data, source, err := load(ctx)
	if err != nil {
		if d.current(gen) {
			d.observer.Notice(i18n.T(d.Lang(), i18n.MsgNetworkError, err))
		}
		return err
	}
	return d.ingest(data, source, gen)
}

func (d *Dashboard) ingest(data []byte, source string, gen uint64) error {
	records, format, err := report.Parse(data)
	if errors.Is(err, report.ErrEmptyInput) {
		slog.Info("report is empty, nothing loaded", "source", source)
		d.observer.Notice(i18n.T(d.Lang(), i18n.MsgEmpty))
		return err
	}
	if err != nil {
		slog.Debug("cannot parse report", "source", source, "error", err)
		d.observer.Notice(i18n.T(d.Lang(), i18n.MsgParseError, err))
		return err
	}
	slog.Debug("report decoded", "source", source, "format", format, "records", len(records))

	if !d.apply(pipeline.Build(records, source), gen) {
		return ErrSuperseded
	}
	return nil
}

// apply installs ds as the loaded report unless gen is stale. The active
// file filter is cleared, the view recomputed, and both the UI state and the
// dataset cache persisted.
func (d *Dashboard) apply(ds *pipeline.Dataset, gen uint64) bool {
	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		slog.Debug("discarding superseded import", "source", ds.Source)
		return false
	}
	d.dataset = ds
	d.filter.ActiveFile = ""
	d.recompute()
	d.saveUI()
	logStoreErr(d.store.SaveDataset(ds))
	lang := d.lang()
	d.mu.Unlock()

	slog.Info("report loaded", "source", ds.Source, "issues", ds.Len(), "files", ds.Files.Len())
	d.observer.Loaded(ds)
	d.observer.Notice(i18n.T(lang, i18n.MsgLoaded))
	return true
}

func (d *Dashboard) nextGeneration() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	return d.generation
}

func (d *Dashboard) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation == gen
}
