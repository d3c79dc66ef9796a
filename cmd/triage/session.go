package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/config"
	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/pipeline"
	"github.com/davetashner/triage/internal/store"
)

// stderrObserver prints dashboard notices to the command's error stream.
type stderrObserver struct {
	w io.Writer
}

var _ dashboard.Observer = stderrObserver{}

func (o stderrObserver) Loaded(ds *pipeline.Dataset) {
	slog.Debug("report loaded", "source", ds.Source, "issues", ds.Len(), "load_id", ds.LoadID)
}

func (o stderrObserver) Notice(msg string) {
	if quiet || msg == "" {
		return
	}
	_, _ = fmt.Fprintln(o.w, color.YellowString(msg))
}

// dashboardOptions translates the effective configuration into dashboard
// defaults. The configuration was validated when it was loaded.
func dashboardOptions(c *config.Config, obs dashboard.Observer) (dashboard.Options, error) {
	opts := dashboard.Options{Observer: obs}
	set, err := c.SeveritySet()
	if err != nil {
		return opts, err
	}
	opts.Severities = set
	if opts.Sort, err = c.Sort(); err != nil {
		return opts, err
	}
	opts.Theme = dashboard.ParseThemeOr(c.Theme, dashboard.ThemeLight)
	if c.Language != "" {
		if opts.Lang, err = i18n.Parse(c.Language); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// stateDirFor resolves the state directory: the --state-dir flag, then the
// state_dir config key, then .triage/ at the project root.
func stateDirFor(dir string) (string, error) {
	override := stateDir
	if override == "" {
		override = cfg.StateDir
	}
	return store.ResolveDir(dir, override)
}

// openDashboard restores the session persisted for the project directory.
func openDashboard(cmd *cobra.Command) (*dashboard.Dashboard, error) {
	return openDashboardWith(cmd, stderrObserver{w: cmd.ErrOrStderr()})
}

func openDashboardWith(cmd *cobra.Command, obs dashboard.Observer) (*dashboard.Dashboard, error) {
	dir, err := cmdFS.Abs(workDir)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "cannot resolve path %q: %v", workDir, err)
	}
	sdir, err := stateDirFor(dir)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "cannot resolve state directory: %v", err)
	}
	opts, err := dashboardOptions(cfg, obs)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "%v", err)
	}
	slog.Debug("opening state", "dir", sdir, "command", cmd.Name())
	d := dashboard.New(store.Open(sdir), opts)
	d.Restore()
	return d, nil
}
