package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/output"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/source"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := output.GetRenderer(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.Theme != "" {
		if _, err := dashboard.ParseTheme(cfg.Theme); err != nil {
			errs = append(errs, fmt.Sprintf("theme: %v", err))
		}
	}

	if cfg.Language != "" {
		if _, err := i18n.Parse(cfg.Language); err != nil {
			errs = append(errs, fmt.Sprintf("language: %v", err))
		}
	}

	if cfg.DemoURL != "" {
		u, err := url.Parse(cfg.DemoURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("demo_url: must be an http(s) URL, got %q", cfg.DemoURL))
		}
	}

	if cfg.GitHubRepo != "" {
		if _, err := source.ParseRepo(cfg.GitHubRepo); err != nil {
			errs = append(errs, fmt.Sprintf("github_repo: %v", err))
		}
	}

	if _, err := ParseSort(cfg.DefaultSort); err != nil {
		errs = append(errs, fmt.Sprintf("default_sort: %v", err))
	}

	for _, name := range cfg.Severities {
		if _, ok := severity.Parse(name); !ok {
			errs = append(errs, fmt.Sprintf("severities: unknown severity %q", name))
		}
	}

	if cfg.ServeAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.ServeAddr); err != nil {
			errs = append(errs, fmt.Sprintf("serve_addr: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
