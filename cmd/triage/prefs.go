package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Set or toggle the display theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(dashboard.ThemeLight), string(dashboard.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDashboard(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			d.ToggleTheme()
		} else {
			t, err := dashboard.ParseTheme(args[0])
			if err != nil {
				return exitError(ExitInvalidArgs, "%v", err)
			}
			d.SetTheme(t)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.Theme())
		return nil
	},
}

var langCmd = &cobra.Command{
	Use:       "lang [en|fr]",
	Short:     "Set or toggle the display language",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(i18n.English), string(i18n.French)},
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDashboard(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			d.ToggleLanguage()
		} else {
			l, err := i18n.Parse(args[0])
			if err != nil {
				return exitError(ExitInvalidArgs, "%v", err)
			}
			d.SetLanguage(l)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.Lang())
		return nil
	},
}
