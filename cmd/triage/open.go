package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/output"
	"github.com/davetashner/triage/internal/testable"
)

// executor launches editors. Replaced in tests.
var executor testable.CommandExecutor = testable.DefaultExecutor()

var openLinks bool

var openCmd = &cobra.Command{
	Use:   "open <ref>",
	Short: "Open an issue's file in your editor",
	Long: `Open the file of an issue at its line.

The editor is taken from $VISUAL, then $EDITOR; VS Code ("code") is used when
neither is set and it is installed, vi otherwise. With --links the editor
deep links are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openLinks, "links", false, "print editor deep links instead of launching an editor")
}

func runOpen(cmd *cobra.Command, args []string) error {
	d, err := openDashboard(cmd)
	if err != nil {
		return err
	}
	id, err := d.Resolve(args[0])
	if err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}
	var it issue.Issue
	for _, candidate := range d.Dataset().Issues {
		if candidate.ID() == id {
			it = candidate
			break
		}
	}

	dir, err := projectDir()
	if err != nil {
		return err
	}
	path := it.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	if openLinks {
		for _, l := range output.IDELinks(path, it.Line) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", l.Name, l.URL)
		}
		return nil
	}

	name, editorArgs := editorCommand(path, it.Line)
	streams := testable.Streams{Stdin: os.Stdin, Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	if err := executor.Run(cmd.Context(), streams, name, editorArgs...); err != nil {
		return exitError(ExitInvalidArgs, "%s: %v", name, err)
	}
	return nil
}

// editorCommand builds the command line opening path at line.
func editorCommand(path string, line int) (string, []string) {
	line = max(line, 1)
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			args := append(fields[1:], "+"+strconv.Itoa(line), path)
			return fields[0], args
		}
	}
	if _, err := executor.LookPath("code"); err == nil {
		return "code", []string{"--goto", output.Location(path, line)}
	}
	return "vi", []string{"+" + strconv.Itoa(line), path}
}
