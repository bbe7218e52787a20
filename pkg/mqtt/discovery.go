package mqtt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// nonAlphanumeric matches any character that is not alphanumeric or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// DiscoveryConfig holds a single HA MQTT discovery payload.
type DiscoveryConfig struct {
	Topic   string // Full MQTT topic (homeassistant/...)
	Payload []byte // JSON-encoded config (empty = remove)
}

// HADevice is the "device" block in HA discovery payloads.
type HADevice struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	ViaDevice    string   `json:"via_device,omitempty"`
}

// BinarySensorConfig is the HA discovery payload for binary_sensor.
type BinarySensorConfig struct {
	Name        string   `json:"name"`
	ObjectID    string   `json:"object_id"`
	UniqueID    string   `json:"unique_id"`
	StateTopic  string   `json:"state_topic"`
	DeviceClass string   `json:"device_class,omitempty"`
	PayloadOn   string   `json:"payload_on"`
	PayloadOff  string   `json:"payload_off"`
	Device      HADevice `json:"device"`
}

// SafeObjectID sanitizes a string for use as an HA object_id.
// Replaces any non-alphanumeric character (except underscore) with
// underscore, lowercases, and trims leading/trailing underscores.
func SafeObjectID(s string) string {
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "unknown"
	}
	return s
}

// ContactTopic is the state topic a sensor's contact value is published on.
func ContactTopic(topicPrefix, usn string) string {
	return topicPrefix + "/" + SafeObjectID(usn) + "/contact"
}

// BuildSensorDiscoveryConfig creates the HA discovery config for a
// contact sensor. HA shows it as a garage door that is "open" or
// "closed"; the unknown state simply leaves the entity unavailable.
func BuildSensorDiscoveryConfig(s *sensor.Sensor, topicPrefix, haPrefix string) DiscoveryConfig {
	safeID := SafeObjectID(s.USN)

	name := s.Name
	if name == "" {
		name = s.USN
	}

	cfg := BinarySensorConfig{
		Name:        name,
		ObjectID:    "garage_" + safeID,
		UniqueID:    "garage_" + safeID,
		StateTopic:  ContactTopic(topicPrefix, s.USN),
		DeviceClass: "garage_door",
		PayloadOn:   string(sensor.ContactOpen),
		PayloadOff:  string(sensor.ContactClosed),
		Device: HADevice{
			Identifiers:  []string{"garage_" + safeID},
			Name:         name,
			Model:        s.DeviceType,
			Manufacturer: "pi-garage",
			ViaDevice:    "pi-garage-hub",
		},
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		return DiscoveryConfig{}
	}
	return DiscoveryConfig{
		Topic:   fmt.Sprintf("%s/binary_sensor/garage_%s/contact/config", haPrefix, safeID),
		Payload: payload,
	}
}

// BuildSensorRemovalConfig returns a discovery config with an empty
// payload to remove a sensor from HA. Publishing an empty payload to a
// discovery topic tells HA to remove the entity.
func BuildSensorRemovalConfig(usn, haPrefix string) DiscoveryConfig {
	return DiscoveryConfig{
		Topic: fmt.Sprintf("%s/binary_sensor/garage_%s/contact/config", haPrefix, SafeObjectID(usn)),
	}
}
