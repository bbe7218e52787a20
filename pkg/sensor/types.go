package sensor

import "time"

// ContactValue is the open/closed state attributed to a contact sensor.
type ContactValue string

const (
	ContactUnknown ContactValue = "unknown"
	ContactOpen    ContactValue = "open"
	ContactClosed  ContactValue = "closed"
)

// ParseContact maps a stored string back to a ContactValue, defaulting
// to ContactUnknown for anything unrecognized.
func ParseContact(s string) ContactValue {
	switch ContactValue(s) {
	case ContactOpen:
		return ContactOpen
	case ContactClosed:
		return ContactClosed
	default:
		return ContactUnknown
	}
}

// Sensor is one registered child contact sensor. The USN is its unique
// identifier, stable for the sensor's lifetime, and the sole join key
// between inbound notifications and registered sensors.
//
// HexIP and HexPort hold the endpoint exactly as announced (hex-encoded);
// decoding is deferred to the ssdp address codec. NetworkID is the
// composite fallback identifier ("hexip:hexport") used when the explicit
// fields are absent.
type Sensor struct {
	USN        string       `json:"usn"`
	Name       string       `json:"name"`
	DeviceType string       `json:"device_type,omitempty"`
	MAC        string       `json:"mac,omitempty"`
	HexIP      string       `json:"hex_ip,omitempty"`
	HexPort    string       `json:"hex_port,omitempty"`
	SSDPPath   string       `json:"ssdp_path,omitempty"`
	NetworkID  string       `json:"network_id,omitempty"`
	Contact    ContactValue `json:"contact"`

	LastSeen       time.Time `json:"last_seen,omitempty"`
	LastSubscribed time.Time `json:"last_subscribed,omitempty"`
}

// Event types emitted by the hub.
const (
	EventSensorDiscovered = "sensor_discovered"
	EventSensorUpdated    = "sensor_updated"
	EventSensorRemoved    = "sensor_removed"
	EventContactChanged   = "contact_changed"
)

// Event represents a sensor lifecycle or state-change event.
type Event struct {
	Type      string       `json:"type"`
	Sensor    *Sensor      `json:"sensor,omitempty"`
	Previous  ContactValue `json:"previous,omitempty"` // contact_changed only
	Timestamp time.Time    `json:"timestamp"`
}

// Registration is a manual sensor registration request.
type Registration struct {
	USN        string `json:"usn"`
	Name       string `json:"name,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
	MAC        string `json:"mac,omitempty"`
	HexIP      string `json:"hex_ip,omitempty"`
	HexPort    string `json:"hex_port,omitempty"`
	SSDPPath   string `json:"ssdp_path,omitempty"`
	NetworkID  string `json:"network_id,omitempty"`
}
