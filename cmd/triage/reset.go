package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/i18n"
)

var resetYes bool

// stdin is where the confirmation prompt reads from. Replaced in tests.
var stdin io.Reader = os.Stdin

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every done flag",
	Long: `Clear every completion flag and the cached report.

Filter, sort and display preferences are kept. Run "triage import" again to
bring the report back.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
}

func runReset(cmd *cobra.Command, _ []string) error {
	d, err := openDashboard(cmd)
	if err != nil {
		return err
	}
	if !resetYes {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", i18n.T(d.Lang(), i18n.MsgResetConfirm))
		if !confirmed(stdin) {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
			return nil
		}
	}
	d.Reset()
	return nil
}

func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}
