package main

import (
	"io"

	"github.com/spf13/cobra"

	triagelog "github.com/davetashner/triage/internal/log"
	"github.com/davetashner/triage/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and check off issues in the terminal",
	Long: `Open a full-screen issue table.

Keys: space toggles the selected issue, / searches, o hides done issues,
s and S change the sort, f cycles the file filter, 1-5 toggle severities,
t switches the theme, l the language, R resets, q quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Log lines would corrupt the alternate screen.
		triagelog.SetupWriter(io.Discard, verbose, quiet)
		d, err := openDashboardWith(cmd, nil)
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), d)
	},
}
