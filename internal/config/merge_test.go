package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/view"
)

func TestMerge_HigherWins(t *testing.T) {
	lower := &Config{
		OutputFormat: "json",
		Theme:        "dark",
		Severities:   []string{"critical"},
		ServeAddr:    "127.0.0.1:1",
	}
	higher := &Config{
		Theme:      "light",
		Language:   "fr",
		Severities: []string{"low", "info"},
	}

	got := Merge(lower, higher)
	assert.Equal(t, "json", got.OutputFormat)
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, "fr", got.Language)
	assert.Equal(t, []string{"low", "info"}, got.Severities)
	assert.Equal(t, "127.0.0.1:1", got.ServeAddr)
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	lower := &Config{Severities: []string{"high"}}
	got := Merge(lower, &Config{})
	got.Severities[0] = "low"
	assert.Equal(t, []string{"high"}, lower.Severities)
}

func TestMerge_AllFields(t *testing.T) {
	higher := &Config{
		StateDir:     "/tmp/state",
		OutputFormat: "html",
		Theme:        "dark",
		Language:     "en",
		DemoURL:      "https://example.com/r.json",
		GitHubRepo:   "acme/widgets",
		DefaultSort:  "file",
		Severities:   []string{"normal"},
		ServeAddr:    ":8080",
	}
	assert.Equal(t, higher, Merge(&Config{}, higher))
}

func TestEffective_ProjectOverridesGlobal(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "triage"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "triage", "config.yaml"), []byte("theme: dark\nlanguage: fr\n"), 0o600))

	dir := t.TempDir()
	writeConfig(t, dir, FileName, "language: en\n")

	cfg, err := Effective(dir)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "en", cfg.Language)
}

func TestEffective_Invalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	writeConfig(t, dir, FileName, "theme: neon\n")

	_, err := Effective(dir)
	assert.ErrorContains(t, err, "theme:")
}

func TestSeveritySet(t *testing.T) {
	set, err := (&Config{}).SeveritySet()
	require.NoError(t, err)
	assert.Nil(t, set)

	set, err = (&Config{Severities: []string{"Critical", "low"}}).SeveritySet()
	require.NoError(t, err)
	assert.Equal(t, []severity.Level{severity.Critical, severity.Low}, set.Levels())
	assert.Len(t, set, len(severity.All()))

	_, err = (&Config{Severities: []string{"urgent"}}).SeveritySet()
	assert.Error(t, err)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in      string
		want    view.Sort
		wantErr bool
	}{
		{"", view.Sort{}, false},
		{"line", view.Sort{Key: view.KeyLine}, false},
		{"file:asc", view.Sort{Key: view.KeyFile}, false},
		{"message:desc", view.Sort{Key: view.KeyMessage, Desc: true}, false},
		{"color", view.Sort{}, true},
		{"line:down", view.Sort{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSort(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	s, err := (&Config{DefaultSort: "type:desc"}).Sort()
	require.NoError(t, err)
	assert.Equal(t, view.Sort{Key: view.KeyType, Desc: true}, s)
}
