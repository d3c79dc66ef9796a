// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/triage/internal/dashboard"
)

// New creates an MCP server whose tools act on d.
func New(d *dashboard.Dashboard, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "triage",
		Title:   "Triage static analysis dashboard",
		Version: version,
	}, nil)

	registerTools(server, &tools{dash: d})
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, d *dashboard.Dashboard, version string, transport mcp.Transport) error {
	return New(d, version).Run(ctx, transport)
}
