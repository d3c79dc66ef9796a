// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

// GlobalConfigDir is where the per-user config lives:
// $XDG_CONFIG_HOME/triage, else the OS user config dir.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "triage")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "triage")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "triage")
}

// GlobalConfigPath is the file "config set --global" writes.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal reads config.yaml, or config.toml, from GlobalConfigDir. A
// missing file is an empty Config.
func LoadGlobal() (*Config, error) {
	dir := GlobalConfigDir()
	return loadFirst(GlobalConfigPath(), filepath.Join(dir, "config.toml"))
}
