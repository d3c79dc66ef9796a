// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.OutputFormat)
	assert.Nil(t, cfg.Severities)
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, `
output_format: markdown
theme: dark
language: fr
default_sort: line:desc
severities:
  - critical
  - high
serve_addr: 127.0.0.1:9000
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, "line:desc", cfg.DefaultSort)
	assert.Equal(t, []string{"critical", "high"}, cfg.Severities)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServeAddr)
}

func TestLoad_TOMLFallback(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, TOMLFileName, `
output_format = "json"
github_repo = "acme/widgets"
severities = ["low", "info"]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "acme/widgets", cfg.GitHubRepo)
	assert.Equal(t, []string{"low", "info"}, cfg.Severities)
}

func TestLoad_YAMLWinsOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, "theme: dark\n")
	writeConfig(t, dir, TOMLFileName, `theme = "light"`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestLoad_TOMLUnknownKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, TOMLFileName, `colour = "blue"`)

	_, err := Load(dir)
	assert.ErrorContains(t, err, `unknown key "colour"`)
}

func TestLoad_InvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, "{{invalid yaml")
	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)

	dir = t.TempDir()
	writeConfig(t, dir, TOMLFileName, "theme = ")
	cfg, err = Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Config{}, *cfg)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &Config{Theme: "dark", Severities: []string{"high"}}))
	assert.Equal(t, "theme: dark\nseverities:\n  - high\n", buf.String())
}

func TestLoadRawAndWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	m, err := LoadRaw(path)
	require.NoError(t, err)
	assert.Empty(t, m)

	m["theme"] = "dark"
	m["custom"] = map[string]any{"kept": true}
	require.NoError(t, WriteFile(path, m))

	again, err := LoadRaw(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", again["theme"])
	assert.Equal(t, map[string]any{"kept": true}, again["custom"])
}
