package main

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/output"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/view"
)

// List command flags.
var (
	listSeverities []string
	listQuery      string
	listOpen       bool
	listFile       string
	listSort       string
	listDir        string
	listFormat     string
	listOutput     string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the filtered and sorted issue list",
	Long: `Show the current report with per-severity counts, per-file progress and
overall progress.

Filter and sort flags change the saved view: the next list, the TUI and the
web dashboard all start from it. Use --file - to clear the file filter and
--query "" to clear the search.`,
	Example: `  triage list --severity critical,high --open
  triage list --sort file --dir desc
  triage list --format html -o dashboard.html`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	f := listCmd.Flags()
	f.StringSliceVar(&listSeverities, "severity", nil, "severities to show (critical, high, normal, low, info)")
	f.StringVar(&listQuery, "query", "", "case-insensitive search in message, type and file")
	f.BoolVar(&listOpen, "open", false, "hide issues already marked done")
	f.StringVar(&listFile, "file", "", "show only this file (- clears the filter)")
	f.StringVar(&listSort, "sort", "", "sort key: severity, type, file, line, message")
	f.StringVar(&listDir, "dir", "asc", "sort direction: asc or desc")
	f.StringVarP(&listFormat, "format", "f", "", "output format: table, json, markdown, html")
	f.StringVarP(&listOutput, "output", "o", "", "write to this file instead of stdout")
}

func runList(cmd *cobra.Command, _ []string) error {
	format := listFormat
	if format == "" {
		format = cfg.OutputFormat
	}
	if format == "" {
		format = "table"
	}
	r, err := output.GetRenderer(format)
	if err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}

	d, err := openDashboard(cmd)
	if err != nil {
		return err
	}
	if err := applyListFlags(cmd.Flags(), d); err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}
	return render(cmd, r, d.Snapshot(), listOutput)
}

// applyListFlags validates every changed flag, then applies them.
func applyListFlags(flags *pflag.FlagSet, d *dashboard.Dashboard) error {
	var levels severity.Set
	if flags.Changed("severity") {
		levels = severity.NewSet()
		for _, name := range listSeverities {
			l, ok := severity.Parse(name)
			if !ok {
				return fmt.Errorf("unknown severity %q", name)
			}
			levels[l] = true
		}
		for _, l := range severity.All() {
			if !levels[l] {
				levels[l] = false
			}
		}
	}
	if flags.Changed("dir") && listDir != "asc" && listDir != "desc" {
		return fmt.Errorf("unknown sort direction %q (want asc or desc)", listDir)
	}
	var sort *view.Sort
	if flags.Changed("sort") {
		k, err := view.ParseKey(listSort)
		if err != nil {
			return err
		}
		sort = &view.Sort{Key: k, Desc: view.ParseDir(listDir)}
	} else if flags.Changed("dir") {
		s := d.Sort()
		s.Desc = view.ParseDir(listDir)
		sort = &s
	}

	if levels != nil {
		d.SetSeverities(levels)
	}
	if flags.Changed("query") {
		d.SetQuery(listQuery)
	}
	if flags.Changed("open") {
		d.SetOnlyIncomplete(listOpen)
	}
	if flags.Changed("file") {
		if listFile == "-" || listFile == "" {
			d.ClearActiveFile()
		} else if d.Filter().ActiveFile != listFile {
			d.SetActiveFile(listFile)
		}
	}
	if sort != nil {
		d.SetSort(*sort)
	}
	return nil
}

// render writes snap with r to path, or to stdout when path is empty.
func render(cmd *cobra.Command, r output.Renderer, snap dashboard.Snapshot, path string) error {
	if path == "" {
		return r.Render(snap, cmd.OutOrStdout())
	}
	var buf bytes.Buffer
	if err := r.Render(snap, &buf); err != nil {
		return err
	}
	if err := writeOutput(path, buf.Bytes()); err != nil {
		return err
	}
	slog.Info("wrote output", "path", path, "format", r.Name(), "bytes", buf.Len())
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := cmdFS.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // user-chosen report file
		return exitError(ExitInvalidArgs, "cannot write %s: %v", path, err)
	}
	return nil
}
