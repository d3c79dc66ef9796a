package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/source"
)

var demoStars bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Load the demo report",
	Long: `Load the demo report. When demo_url is configured the report is downloaded
from there; otherwise the report bundled with the binary is used.

With --stars the project's GitHub star count is fetched at the same time.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoStars, "stars", false, "also show the GitHub star count")
}

// demoLoader returns the configured demo source.
func demoLoader() dashboard.Loader {
	url := cfg.DemoURL
	return func(ctx context.Context) ([]byte, string, error) {
		if url == "" {
			return source.Demo(), source.DemoSource, nil
		}
		data, err := source.Fetch(ctx, url)
		return data, url, err
	}
}

func runDemo(cmd *cobra.Command, _ []string) error {
	d, err := openDashboard(cmd)
	if err != nil {
		return err
	}

	var stars int
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return ingestError(d.Import(ctx, demoLoader()))
	})
	if demoStars {
		g.Go(func() error {
			var err error
			stars, err = fetchStars(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return classify(err)
	}

	printSummary(cmd, d)
	if demoStars {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T(d.Lang(), i18n.MsgStars, stars))
	}
	return nil
}
