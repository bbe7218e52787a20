package mqtt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

func TestSafeObjectID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"uuid:garage1", "uuid_garage1"},
		{"uuid:d1c58eb4::urn:device:1", "uuid_d1c58eb4__urn_device_1"},
		{"Already_Safe", "already_safe"},
		{"___", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeObjectID(tt.in), "in=%q", tt.in)
	}
}

func TestContactTopic(t *testing.T) {
	assert.Equal(t, "garage/uuid_garage1/contact", ContactTopic("garage", "uuid:garage1"))
}

func TestBuildSensorDiscoveryConfig(t *testing.T) {
	s := &sensor.Sensor{
		USN:        "uuid:garage1",
		Name:       "Garage Door",
		DeviceType: "04",
	}

	cfg := BuildSensorDiscoveryConfig(s, "garage", "homeassistant")
	assert.Equal(t, "homeassistant/binary_sensor/garage_uuid_garage1/contact/config", cfg.Topic)

	var payload BinarySensorConfig
	require.NoError(t, json.Unmarshal(cfg.Payload, &payload))
	assert.Equal(t, "Garage Door", payload.Name)
	assert.Equal(t, "garage_uuid_garage1", payload.UniqueID)
	assert.Equal(t, "garage/uuid_garage1/contact", payload.StateTopic)
	assert.Equal(t, "garage_door", payload.DeviceClass)
	assert.Equal(t, "open", payload.PayloadOn)
	assert.Equal(t, "closed", payload.PayloadOff)
	assert.Equal(t, []string{"garage_uuid_garage1"}, payload.Device.Identifiers)
}

func TestBuildSensorDiscoveryConfig_NameFallsBackToUSN(t *testing.T) {
	cfg := BuildSensorDiscoveryConfig(&sensor.Sensor{USN: "uuid:garage1"}, "garage", "homeassistant")

	var payload BinarySensorConfig
	require.NoError(t, json.Unmarshal(cfg.Payload, &payload))
	assert.Equal(t, "uuid:garage1", payload.Name)
}

func TestBuildSensorRemovalConfig(t *testing.T) {
	cfg := BuildSensorRemovalConfig("uuid:garage1", "homeassistant")
	assert.Equal(t, "homeassistant/binary_sensor/garage_uuid_garage1/contact/config", cfg.Topic)
	assert.Empty(t, cfg.Payload)
}
