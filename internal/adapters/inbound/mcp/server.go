package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCheckJSONMCPServer creates an MCP server exposing the probe as tools,
// so AI assistants can run checks against HTTP endpoints or classify
// documents supplied inline.
func NewCheckJSONMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		"check_json",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s)

	return s
}
