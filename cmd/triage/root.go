package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/config"
	triagelog "github.com/davetashner/triage/internal/log"
)

// Global flag values.
var (
	verbose  bool
	quiet    bool
	noColor  bool
	stateDir string
	workDir  string
)

// cfg is the effective configuration, loaded before every command runs.
var cfg = &config.Config{}

// rootCmd is the base command for triage.
var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Work through static-analysis reports issue by issue",
	Long: `Triage is a static-analysis dashboard. It imports a JSON or Checkstyle XML
report, normalises every issue, and lets you filter, sort and check issues off
from the terminal, a browser, or an AI agent over MCP. Progress is kept in a
.triage/ state directory and survives re-imports of the same report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		triagelog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
		dir, err := cmdFS.Abs(workDir)
		if err != nil {
			return exitError(ExitInvalidArgs, "cannot resolve path %q: %v", workDir, err)
		}
		loaded, err := config.Effective(dir)
		if err != nil {
			return exitError(ExitInvalidArgs, "%v", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default: .triage/ at the project root)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "chdir", "C", ".", "run as if started in this directory")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(langCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(starsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
