package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Contains(t, Keys, "theme")
	assert.Contains(t, Keys, "severities")
	assert.IsIncreasing(t, Keys)
}

func TestValidateKeyPath(t *testing.T) {
	assert.NoError(t, ValidateKeyPath("theme"))
	assert.NoError(t, ValidateKeyPath("severities"))
	assert.ErrorContains(t, ValidateKeyPath(""), "empty key path")
	assert.ErrorContains(t, ValidateKeyPath("max_issues"), "unknown key")
	assert.ErrorContains(t, ValidateKeyPath("theme.dark"), "scalar")
}

func TestGetValue(t *testing.T) {
	cfg := &Config{OutputFormat: "json", Severities: []string{"high"}}

	val, err := GetValue(cfg, "output_format")
	require.NoError(t, err)
	assert.Equal(t, "json", val)

	val, err = GetValue(cfg, "severities")
	require.NoError(t, err)
	assert.Equal(t, []any{"high"}, val)

	_, err = GetValue(cfg, "theme")
	assert.ErrorContains(t, err, "not found")
}

func TestSetValue(t *testing.T) {
	data := map[string]any{}
	require.NoError(t, SetValue(data, "theme", "dark"))
	require.NoError(t, SetValue(data, "serve_addr", "127.0.0.1:8080"))
	require.NoError(t, SetValue(data, "severities", "critical, high,,"))

	assert.Equal(t, "dark", data["theme"])
	assert.Equal(t, "127.0.0.1:8080", data["serve_addr"])
	assert.Equal(t, []any{"critical", "high"}, data["severities"])
	assert.ErrorContains(t, SetValue(data, "", "1"), "empty key path")
}

func TestToFlatMap(t *testing.T) {
	m, err := ToFlatMap(&Config{Theme: "dark"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "dark"}, m)

	m, err = ToFlatMap(&Config{})
	require.NoError(t, err)
	assert.Empty(t, m)
}
