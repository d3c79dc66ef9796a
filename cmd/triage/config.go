package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/triage/internal/config"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify triage configuration",
	Long: `View and modify triage configuration.

Triage reads configuration from .triage.yaml (or .triage.toml) in the
project directory. A global config at ~/.config/triage/config.yaml provides
defaults. Project settings override global settings, and command-line flags
override both.

Note: config set does a YAML round-trip and will not preserve comments.
If you need to keep comments, edit the file directly.`,
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return config.Write(cmd.OutOrStdout(), cfg)
	},
}

// configGetCmd retrieves a configuration value by key.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by key.

Examples:
  triage config get output_format
  triage config get severities
  triage config get --global theme`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, float, or string; severities takes a
comma-separated list. By default, writes to .triage.yaml in the project
directory. Use --global to write to ~/.config/triage/config.yaml.

Note: This does a YAML round-trip and will not preserve comments.

Examples:
  triage config set output_format json
  triage config set severities critical,high
  triage config set default_sort file:desc
  triage config set --global language fr`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes
from the project config (.triage.yaml) or global config
(~/.config/triage/config.yaml). Project values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/triage/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/triage/config.yaml)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

// projectDir returns the absolute project directory.
func projectDir() (string, error) {
	dir, err := cmdFS.Abs(workDir)
	if err != nil {
		return "", exitError(ExitInvalidArgs, "cannot resolve path %q: %v", workDir, err)
	}
	return dir, nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]
	if err := config.ValidateKeyPath(keyPath); err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}

	c := cfg
	if configGlobal {
		var err error
		if c, err = config.LoadGlobal(); err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
	}

	val, err := config.GetValue(c, keyPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}
	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]
	rawValue := args[1]

	if err := config.ValidateKeyPath(keyPath); err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}

	// Determine target file path.
	targetPath := config.GlobalConfigPath()
	if !configGlobal {
		dir, err := projectDir()
		if err != nil {
			return err
		}
		targetPath = filepath.Join(dir, config.FileName)
	}

	// Load existing file as raw map.
	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}

	// Round-trip validate: unmarshal to Config and validate.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return exitError(ExitInvalidArgs, "invalid config after set: %v", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, rawValue)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	dir, err := projectDir()
	if err != nil {
		return err
	}
	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	projectCfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}

	globalMap, err := config.ToFlatMap(globalCfg)
	if err != nil {
		return err
	}
	projectMap, err := config.ToFlatMap(projectCfg)
	if err != nil {
		return err
	}

	// Merge: project overrides global, track source.
	type entry struct {
		value  any
		source string
	}

	seen := make(map[string]entry)
	for k, v := range globalMap {
		seen[k] = entry{value: v, source: "global"}
	}
	for k, v := range projectMap {
		seen[k] = entry{value: v, source: "project"}
	}

	if len(seen) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'triage config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	projectColor := color.New(color.FgGreen)

	for _, k := range keys {
		e := seen[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, formatSource(e.source, globalColor, projectColor))
	}
	return nil
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, projectColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprintf("(global)")
	case "project":
		return projectColor.Sprintf("(project)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
