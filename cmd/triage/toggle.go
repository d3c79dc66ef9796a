package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/issue"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <ref>...",
	Short: "Flip the done flag of issues",
	Long: `Flip the done flag of one or more issues.

A reference is a full issue ID, a prefix of the short ID shown by
"triage list", or file:line.`,
	Example: `  triage toggle 3f9a2c
  triage toggle src/Foo.php:42`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return markIssues(cmd, args, nil)
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <ref>...",
	Short: "Mark issues as done",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		done := true
		return markIssues(cmd, args, &done)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <ref>...",
	Short: "Mark issues as not done",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		done := false
		return markIssues(cmd, args, &done)
	},
}

// markIssues resolves every reference first, so one bad reference changes
// nothing. A nil state flips each issue.
func markIssues(cmd *cobra.Command, refs []string, state *bool) error {
	d, err := openDashboard(cmd)
	if err != nil {
		return err
	}
	ids := make([]issue.ID, 0, len(refs))
	for _, ref := range refs {
		id, err := d.Resolve(ref)
		if err != nil {
			if errors.Is(err, dashboard.ErrNoDataset) {
				return exitError(ExitInvalidArgs, "no report loaded; run \"triage import\" first")
			}
			return exitError(ExitInvalidArgs, "%v", err)
		}
		ids = append(ids, id)
	}

	w := cmd.OutOrStdout()
	for _, id := range ids {
		done := false
		if state != nil {
			done = *state
			d.SetDone(id, done)
		} else {
			done = d.Toggle(id)
		}
		mark := "[ ]"
		if done {
			mark = "[x]"
		}
		if !quiet {
			_, _ = fmt.Fprintf(w, "%s %s\n", mark, id.Short())
		}
	}
	printSummary(cmd, d)
	return nil
}
