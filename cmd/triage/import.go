package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/source"
)

var importCmd = &cobra.Command{
	Use:   "import <file|url|->",
	Short: "Load a JSON or Checkstyle XML report",
	Long: `Load a static-analysis report and make it the current one.

The argument is a file path, an http(s) URL, or "-" for standard input.
The format is detected from the content. Issues that were marked done in an
earlier import stay done when they reappear.

An empty report leaves the current one in place and exits successfully.`,
	Example: `  triage import phpstan.json
  psalm --output-format=checkstyle | triage import -
  triage import https://ci.example.com/artifacts/report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	d, err := openDashboard(cmd)
	if err != nil {
		return err
	}
	if err := ingestError(d.Import(cmd.Context(), loaderFor(args[0]))); err != nil {
		return err
	}
	printSummary(cmd, d)
	return nil
}

// loaderFor returns a loader reading arg as a URL, "-" or a file path.
func loaderFor(arg string) dashboard.Loader {
	return func(ctx context.Context) ([]byte, string, error) {
		if isURL(arg) {
			data, err := source.Fetch(ctx, arg)
			return data, arg, err
		}
		data, err := source.ReadFile(arg)
		name := arg
		if arg == "-" {
			name = "stdin"
		}
		return data, name, err
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// printSummary writes a one-line progress summary to stdout.
func printSummary(cmd *cobra.Command, d *dashboard.Dashboard) {
	if quiet {
		return
	}
	snap := d.Snapshot()
	files := 0
	if ds := snap.Dataset; ds != nil && ds.Files != nil {
		files = ds.Files.Len()
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s • %s\n",
		i18n.T(snap.Lang, i18n.MsgSummary, files, snap.View.Total),
		i18n.T(snap.Lang, i18n.MsgProgress, snap.View.Done, snap.View.Total))
}
