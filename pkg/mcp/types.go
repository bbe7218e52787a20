package mcp

import (
	"time"

	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Hub       string `json:"hub" jsonschema:"description=Hub run state"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Sensors Tool ---

// ListSensorsOutput is the output for the list_sensors tool
type ListSensorsOutput struct {
	Sensors []SensorInfo `json:"sensors" jsonschema:"description=List of registered sensors"`
	Count   int          `json:"count" jsonschema:"description=Total number of sensors"`
}

// SensorInfo represents a sensor in tool outputs
type SensorInfo struct {
	USN            string `json:"usn" jsonschema:"description=Unique service name identifying the sensor"`
	Name           string `json:"name,omitempty" jsonschema:"description=User-friendly sensor name"`
	Contact        string `json:"contact" jsonschema:"description=Contact state (open/closed/unknown)"`
	MAC            string `json:"mac,omitempty" jsonschema:"description=Sensor MAC address"`
	Endpoint       string `json:"endpoint,omitempty" jsonschema:"description=Hex-encoded network endpoint"`
	LastSeen       string `json:"last_seen,omitempty" jsonschema:"description=When the sensor was last heard from"`
	LastSubscribed string `json:"last_subscribed,omitempty" jsonschema:"description=When the subscription was last renewed"`
}

// --- Get Sensor Tool ---

// GetSensorOutput is the output for the get_sensor tool
type GetSensorOutput struct {
	Sensor SensorInfo `json:"sensor" jsonschema:"description=Sensor information"`
}

// --- Action Tools ---

// ActionOutput is the output for poll_sensor, subscribe_sensor, and remove_sensor
type ActionOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the action succeeded"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Ingest Message Tool ---

// IngestMessageOutput is the output for the ingest_message tool
type IngestMessageOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the message was accepted"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Helper conversions ---

// SensorToInfo converts a sensor.Sensor to SensorInfo
func SensorToInfo(s *sensor.Sensor) SensorInfo {
	info := SensorInfo{
		USN:     s.USN,
		Name:    s.Name,
		Contact: string(s.Contact),
		MAC:     s.MAC,
	}
	if s.HexIP != "" && s.HexPort != "" {
		info.Endpoint = s.HexIP + ":" + s.HexPort
	} else if s.NetworkID != "" {
		info.Endpoint = s.NetworkID
	}
	if !s.LastSeen.IsZero() {
		info.LastSeen = s.LastSeen.UTC().Format(time.RFC3339)
	}
	if !s.LastSubscribed.IsZero() {
		info.LastSubscribed = s.LastSubscribed.UTC().Format(time.RFC3339)
	}
	return info
}
