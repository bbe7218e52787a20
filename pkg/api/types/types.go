package types

import (
	"time"

	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// --- Request DTOs ---

// IngestRequest is the request body for POST /messages
type IngestRequest struct {
	Message string `json:"message" binding:"required"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Hub       string    `json:"hub"`
	Sensors   int       `json:"sensors"`
	Timestamp time.Time `json:"timestamp"`
}

// ListSensorsResponse is returned from GET /sensors
type ListSensorsResponse struct {
	Sensors []sensor.Sensor `json:"sensors"`
	Count   int             `json:"count"`
}

// SensorResponse is returned from endpoints that yield a single sensor
type SensorResponse struct {
	Sensor sensor.Sensor `json:"sensor"`
}

// ActionResponse is returned from sensor action endpoints
type ActionResponse struct {
	Status string `json:"status"`
	USN    string `json:"usn"`
}

// IngestResponse is returned from message ingest endpoints
type IngestResponse struct {
	Status string `json:"status"`
}
