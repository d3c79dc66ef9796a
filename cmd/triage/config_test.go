package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/triage/internal/config"
	"github.com/davetashner/triage/internal/severity"
)

func TestConfigSetGetList(t *testing.T) {
	dir := testProject(t)

	out, _, err := run(t, dir, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No configuration set.")

	out, _, err = run(t, dir, "config", "set", "output_format", "json")
	require.NoError(t, err)
	assert.Equal(t, "Set output_format = json\n", out)

	_, _, err = run(t, dir, "config", "set", "severities", "critical, high")
	require.NoError(t, err)
	_, _, err = run(t, dir, "config", "set", "--global", "language", "fr")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "output_format: json")

	out, _, err = run(t, dir, "config", "get", "output_format")
	require.NoError(t, err)
	assert.Equal(t, "json\n", out)

	out, _, err = run(t, dir, "config", "get", "severities")
	require.NoError(t, err)
	assert.Equal(t, "- critical\n- high\n", out)

	out, _, err = run(t, dir, "config", "get", "--global", "language")
	require.NoError(t, err)
	assert.Equal(t, "fr\n", out)

	out, _, err = run(t, dir, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "language = fr (global)")
	assert.Contains(t, out, "output_format = json (project)")

	out, _, err = run(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "language: fr")
	assert.Contains(t, out, "severities:")
}

func TestConfigDrivesCommands(t *testing.T) {
	dir := testProject(t)
	writeFile(t, dir, config.FileName, "output_format: json\nseverities: [critical]\ndefault_sort: line:desc\n")

	_, _, err := run(t, dir, "demo")
	require.NoError(t, err)
	env := listJSON(t, dir)
	assert.Equal(t, 13, env.Metadata.Total)
	assert.Less(t, env.Metadata.Visible, 13)
	for _, r := range env.Issues {
		assert.Equal(t, severity.Critical, r.Severity)
	}
	assert.True(t, env.Metadata.Sort.Desc)

	// output_format applies when --format is absent.
	out, _, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"metadata"`)
}

func TestConfigErrors(t *testing.T) {
	dir := testProject(t)

	_, _, err := run(t, dir, "config", "set", "colour", "blue")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
	assert.Contains(t, err.Error(), "unknown key")

	_, _, err = run(t, dir, "config", "set", "theme", "sepia")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
	_, statErr := os.Stat(filepath.Join(dir, config.FileName))
	assert.True(t, os.IsNotExist(statErr), "invalid values are not written")

	_, _, err = run(t, dir, "config", "get", "theme")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
	assert.Contains(t, err.Error(), "not found")

	writeFile(t, dir, config.FileName, "theme: sepia\nserve_addr: nope\n")
	_, _, err = run(t, dir, "list")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
	assert.Contains(t, err.Error(), "theme")
	assert.Contains(t, err.Error(), "serve_addr")
}

func TestConfigTOML(t *testing.T) {
	dir := testProject(t)
	writeFile(t, dir, config.TOMLFileName, "language = \"fr\"\n")
	out, _, err := run(t, dir, "config", "get", "language")
	require.NoError(t, err)
	assert.Equal(t, "fr\n", out)
}
