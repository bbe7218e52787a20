package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health status of the garage hub"),
		),
		s.handleGetHealth,
	)

	// List sensors
	s.mcpServer.AddTool(
		mcp.NewTool("list_sensors",
			mcp.WithDescription("List all registered contact sensors with their current open/closed state"),
		),
		s.handleListSensors,
	)

	// Get sensor
	s.mcpServer.AddTool(
		mcp.NewTool("get_sensor",
			mcp.WithDescription("Get detailed information about a specific sensor by USN"),
			mcp.WithString("usn",
				mcp.Required(),
				mcp.Description("Sensor USN (unique service name)"),
			),
		),
		s.handleGetSensor,
	)

	// Poll sensor
	s.mcpServer.AddTool(
		mcp.NewTool("poll_sensor",
			mcp.WithDescription("Ask a sensor to push its current open/closed state to the hub"),
			mcp.WithString("usn",
				mcp.Required(),
				mcp.Description("Sensor USN"),
			),
		),
		s.handlePollSensor,
	)

	// Subscribe to sensor
	s.mcpServer.AddTool(
		mcp.NewTool("subscribe_sensor",
			mcp.WithDescription("Establish or renew the event subscription for a sensor"),
			mcp.WithString("usn",
				mcp.Required(),
				mcp.Description("Sensor USN"),
			),
		),
		s.handleSubscribeSensor,
	)

	// Remove sensor
	s.mcpServer.AddTool(
		mcp.NewTool("remove_sensor",
			mcp.WithDescription("Unregister a sensor from the hub"),
			mcp.WithString("usn",
				mcp.Required(),
				mcp.Description("Sensor USN"),
			),
		),
		s.handleRemoveSensor,
	)

	// Ingest message
	s.mcpServer.AddTool(
		mcp.NewTool("ingest_message",
			mcp.WithDescription("Feed one raw discovery or notification message to the hub in its comma-separated wire form"),
			mcp.WithString("message",
				mcp.Required(),
				mcp.Description("Raw message, e.g. \"devicetype:04, ssdpUSN:uuid:...\""),
			),
		),
		s.handleIngestMessage,
	)
}
