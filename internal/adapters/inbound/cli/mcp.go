package cli

import (
	mcpadapter "github.com/yifangd/check-json/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the check_json MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start check_json MCP server (stdio)",
		Long:  "Start the check_json MCP server using stdio transport. This lets AI assistants run probes against HTTP endpoints and classify documents supplied inline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewCheckJSONMCPServer()
			return server.ServeStdio(s)
		},
	}
}
