package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hubStatus := "stopped"
	status := "unhealthy"
	if s.controller.Ready() {
		hubStatus = "running"
		status = "healthy"
	}

	out := GetHealthOutput{
		Status:    status,
		Hub:       hubStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListSensors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sensors, err := s.controller.ListSensors(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sensors: %s", err)), nil
	}

	infos := make([]SensorInfo, 0, len(sensors))
	for i := range sensors {
		infos = append(infos, SensorToInfo(&sensors[i]))
	}

	out := ListSensorsOutput{
		Sensors: infos,
		Count:   len(infos),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetSensor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	usn, err := requiredString(request, "usn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	got, err := s.controller.GetSensor(ctx, usn)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sensor not found: %s", err)), nil
	}

	out := GetSensorOutput{Sensor: SensorToInfo(got)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handlePollSensor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	usn, err := requiredString(request, "usn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.controller.PollSensor(ctx, usn); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to poll sensor: %s", err)), nil
	}

	out := ActionOutput{
		Success: true,
		Message: fmt.Sprintf("Sensor %q asked to report its state", usn),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSubscribeSensor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	usn, err := requiredString(request, "usn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.controller.SubscribeSensor(ctx, usn); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to subscribe to sensor: %s", err)), nil
	}

	out := ActionOutput{
		Success: true,
		Message: fmt.Sprintf("Subscription established for sensor %q", usn),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleRemoveSensor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	usn, err := requiredString(request, "usn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.controller.RemoveSensor(ctx, usn); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove sensor: %s", err)), nil
	}

	out := ActionOutput{
		Success: true,
		Message: fmt.Sprintf("Sensor %q removed", usn),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleIngestMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := requiredString(request, "message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.controller.IngestMessage(ctx, message); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to ingest message: %s", err)), nil
	}

	out := IngestMessageOutput{
		Success: true,
		Message: "Message accepted",
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
