package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	iconpackmcp "github.com/gorewood/iconpack/internal/mcp"
	"github.com/gorewood/iconpack/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run iconpack as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "iconpack": {
        "command": "iconpack",
        "args": ["serve"]
      }
    }
  }

Settings are resolved once at startup, the same way generate resolves them.
Warnings go to stderr, stdout carries the protocol.

Available tools: list_icons, inspect_icon, generate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stderr := output.NewPrinter(cmd.ErrOrStderr(), false, false)

			settings, err := loadSettings(cmd)
			if err != nil {
				stderr.Error(err)
				return err
			}
			gen, err := newGenerator(settings, stderr)
			if err != nil {
				stderr.Error(err)
				return err
			}

			server := iconpackmcp.NewServer(buildVersion(), gen)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
