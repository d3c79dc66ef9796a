// Package config handles .triage.yaml (or .triage.toml) configuration files.
package config

// Config represents the contents of a project or global config file. Every
// field is optional; zero values fall through to the next layer.
type Config struct {
	StateDir     string   `yaml:"state_dir,omitempty" toml:"state_dir,omitempty"`
	OutputFormat string   `yaml:"output_format,omitempty" toml:"output_format,omitempty"`
	Theme        string   `yaml:"theme,omitempty" toml:"theme,omitempty"`
	Language     string   `yaml:"language,omitempty" toml:"language,omitempty"`
	DemoURL      string   `yaml:"demo_url,omitempty" toml:"demo_url,omitempty"`
	GitHubRepo   string   `yaml:"github_repo,omitempty" toml:"github_repo,omitempty"`
	DefaultSort  string   `yaml:"default_sort,omitempty" toml:"default_sort,omitempty"`
	Severities   []string `yaml:"severities,omitempty" toml:"severities,omitempty"`
	ServeAddr    string   `yaml:"serve_addr,omitempty" toml:"serve_addr,omitempty"`
}

// FileName is the expected config file name in a project root.
const FileName = ".triage.yaml"

// TOMLFileName is the alternative config file name. It is only read when
// FileName does not exist.
const TOMLFileName = ".triage.toml"

// DefaultServeAddr is used by "triage serve" when nothing is configured.
const DefaultServeAddr = "127.0.0.1:8080"
