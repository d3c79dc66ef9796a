package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/triage/internal/config"
)

const sampleReport = `{"issues":[
 {"file":"src/A.php","line":5,"severity":"critical","type":"Boom","message":"null dereference"},
 {"file":"src/A.php","line":9,"severity":"info","type":"Style","message":"trailing space"},
 {"file":"src/B.php","line":1,"severity":"warning","type":"Unused","message":"unused variable $x"}
]}`

// newTestCmd redirects the root command's output to buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetFlags restores every flag of every command to its default, so
// values from one Execute do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// testProject creates an isolated project directory with its own global
// config home and returns the directory.
func testProject(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range []string{"VISUAL", "EDITOR", "TRIAGE_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	resetFlags(rootCmd)
	cfg = &config.Config{}
	return dir
}

// run executes triage in dir with its state kept in dir/.triage.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cmd, stdout, stderr := newTestCmd()
	full := append([]string{"--no-color", "--chdir", dir, "--state-dir", filepath.Join(dir, ".triage")}, args...)
	cmd.SetArgs(full)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
