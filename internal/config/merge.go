package config

import (
	"fmt"
	"strings"

	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/view"
)

// Merge overlays higher on lower and returns the result. Non-zero fields of
// higher win; neither argument is modified.
func Merge(lower, higher *Config) *Config {
	merged := *lower
	merged.Severities = append([]string(nil), lower.Severities...)

	if higher.StateDir != "" {
		merged.StateDir = higher.StateDir
	}
	if higher.OutputFormat != "" {
		merged.OutputFormat = higher.OutputFormat
	}
	if higher.Theme != "" {
		merged.Theme = higher.Theme
	}
	if higher.Language != "" {
		merged.Language = higher.Language
	}
	if higher.DemoURL != "" {
		merged.DemoURL = higher.DemoURL
	}
	if higher.GitHubRepo != "" {
		merged.GitHubRepo = higher.GitHubRepo
	}
	if higher.DefaultSort != "" {
		merged.DefaultSort = higher.DefaultSort
	}
	if len(higher.Severities) > 0 {
		merged.Severities = append([]string(nil), higher.Severities...)
	}
	if higher.ServeAddr != "" {
		merged.ServeAddr = higher.ServeAddr
	}
	return &merged
}

// Effective loads the global config and the project config in dir, merges
// them (project wins) and validates the result.
func Effective(dir string) (*Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	project, err := Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	cfg := Merge(global, project)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SeveritySet returns the configured default severity selection, or nil
// when none is configured.
func (c *Config) SeveritySet() (severity.Set, error) {
	if len(c.Severities) == 0 {
		return nil, nil
	}
	set := severity.NewSet()
	for _, name := range c.Severities {
		l, ok := severity.Parse(name)
		if !ok {
			return nil, fmt.Errorf("unknown severity %q", name)
		}
		set[l] = true
	}
	for _, l := range severity.All() {
		if !set[l] {
			set[l] = false
		}
	}
	return set, nil
}

// Sort returns the configured default sort, written "key" or "key:dir".
// The zero Sort is returned when none is configured.
func (c *Config) Sort() (view.Sort, error) {
	return ParseSort(c.DefaultSort)
}

// ParseSort parses "key" or "key:asc|desc".
func ParseSort(s string) (view.Sort, error) {
	if s == "" {
		return view.Sort{}, nil
	}
	name, dir, hasDir := strings.Cut(s, ":")
	k, err := view.ParseKey(name)
	if err != nil {
		return view.Sort{}, err
	}
	if hasDir && dir != "asc" && dir != "desc" {
		return view.Sort{}, fmt.Errorf("unknown sort direction %q (want asc or desc)", dir)
	}
	return view.Sort{Key: k, Desc: view.ParseDir(dir)}, nil
}
