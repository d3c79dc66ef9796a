package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/source"
)

// releaseRepo is where triage releases are published.
var releaseRepo = source.Repo{Owner: "davetashner", Name: "triage"}

var versionCheck bool

// versionCmd prints the triage version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version of the triage binary. With --check, also look up the latest release.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "triage %s\n", Version)
		if !versionCheck {
			return nil
		}
		rel, err := source.LatestRelease(cmd.Context(), githubAPI(), releaseRepo)
		if err != nil {
			return classify(err)
		}
		if source.NewerVersion(Version, rel.Tag) {
			_, _ = fmt.Fprintf(w, "A newer release is available: %s (%s)\n", rel.Tag, rel.URL)
		} else {
			_, _ = fmt.Fprintln(w, "You are running the latest release.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}
