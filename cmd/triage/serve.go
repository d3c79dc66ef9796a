package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/config"
	"github.com/davetashner/triage/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve an interactive dashboard and its JSON API over HTTP.

The address comes from --addr, then serve_addr in the config, then
` + config.DefaultServeAddr + `. Stop the server with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (host:port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.ServeAddr
	}
	if addr == "" {
		addr = config.DefaultServeAddr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return exitError(ExitInvalidArgs, "invalid address %q: %v", addr, err)
	}

	board := &web.NoticeBoard{}
	d, err := openDashboardWith(cmd, board)
	if err != nil {
		return err
	}
	srv := web.New(d, web.Options{Demo: demoLoader(), Notices: board})
	err = srv.ListenAndServe(cmd.Context(), addr, func(a net.Addr) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving dashboard on http://%s\n", a)
	})
	if err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}
	return nil
}
