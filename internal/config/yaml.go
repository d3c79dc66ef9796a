package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the project config from the given directory: .triage.yaml, or
// .triage.toml when there is no YAML file. If neither exists, it returns a
// zero-value Config and nil error.
func Load(dir string) (*Config, error) {
	return loadFirst(filepath.Join(dir, FileName), filepath.Join(dir, TOMLFileName))
}

// loadFirst reads the YAML file, falling back to the TOML one.
func loadFirst(yamlPath, tomlPath string) (*Config, error) {
	cfg, err := loadYAML(yamlPath)
	if !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	cfg, err = loadTOML(tomlPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided project path
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func loadTOML(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided project path
	if err != nil {
		return nil, err
	}
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	return &cfg, nil
}

// Write marshals the config to YAML and writes it to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// LoadRaw reads a YAML config file as a generic map, for edits that should
// keep keys the Config struct does not know. A missing file yields an empty
// map.
func LoadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// WriteFile writes a raw config map as YAML, creating parent directories.
func WriteFile(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}
