// Package mcp exposes the hub's sensor surface as MCP tools so
// assistants can inspect and drive contact sensors over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// Server wraps the MCP server with the hub's sensor functionality
type Server struct {
	mcpServer  *server.MCPServer
	controller sensor.Controller
}

// NewServer creates a new MCP server for sensor control
func NewServer(controller sensor.Controller) *Server {
	s := &Server{
		controller: controller,
	}

	// Create MCP server
	s.mcpServer = server.NewMCPServer(
		"pi-garage",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register all tools
	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
