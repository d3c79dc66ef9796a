// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/triage/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running triage as an MCP server, so AI agents can work through a report.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing the dashboard as tools:
  - load_report:  Load a JSON or Checkstyle XML report
  - view:         Filter, sort and show the issue list
  - toggle:       Flip or set the done flag of an issue
  - reset:        Clear every done flag
  - export_state: Export the completion flags

The tools share the state directory with the other triage commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := openDashboard(cmd)
		if err != nil {
			return err
		}
		return mcpserver.Run(cmd.Context(), d, Version, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
