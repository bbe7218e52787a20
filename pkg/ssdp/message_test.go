package ssdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMessage(t *testing.T) {
	raw := "devicetype:sensor, mac:AA:BB:CC, ssdpUSN:uuid:123, body:eyJjbWQiOiJwb2xsIn0="
	rec := ParseMessage(raw)

	assert.Equal(t, "sensor", rec.DeviceType)
	assert.Equal(t, "AA:BB:CC", rec.MAC)
	assert.Equal(t, "uuid:123", rec.SSDPUSN)
	assert.Equal(t, "eyJjbWQiOiJwb2xsIn0=", rec.Body)

	// Fields the message never mentioned stay absent.
	assert.Empty(t, rec.IP)
	assert.Empty(t, rec.Port)
	assert.Empty(t, rec.SSDPPath)
	assert.Empty(t, rec.SSDPTerm)
	assert.Empty(t, rec.Headers)
}

func TestParseMessage_NeverFails(t *testing.T) {
	assert.Equal(t, Record{}, ParseMessage(""))
	assert.Equal(t, Record{}, ParseMessage(",,,"))
	assert.Equal(t, Record{}, ParseMessage("complete garbage with no separators"))
}

func TestParseMessage_AddressFieldsStayHex(t *testing.T) {
	rec := ParseMessage("networkAddress:C0A80001, deviceAddress:1F90")
	assert.Equal(t, "C0A80001", rec.IP)
	assert.Equal(t, "1F90", rec.Port)
}

func TestParseMessage_UnknownKeysIgnored(t *testing.T) {
	rec := ParseMessage("frobnicate:yes, ssdpTerm:urn:x, color:red")
	assert.Equal(t, Record{SSDPTerm: "urn:x"}, rec)
}

func TestParseMessage_EmptyValuesAbsent(t *testing.T) {
	rec := ParseMessage("devicetype:, mac:  , ssdpUSN:uuid:9")
	assert.Empty(t, rec.DeviceType)
	assert.Empty(t, rec.MAC)
	assert.Equal(t, "uuid:9", rec.SSDPUSN)
}

func TestParseMessage_DiscoveryBeacon(t *testing.T) {
	raw := "devicetype:04, mac:B827EB01F318, networkAddress:C0A80132, " +
		"deviceAddress:1F90, ssdpPath:/status, " +
		"ssdpUSN:uuid:d1c58eb4-5e07-47f5-a385-f6dcbbd9b9e2::urn:schemas-upnp-org:device:RPi_Garage_Monitor:1, " +
		"ssdpTerm:urn:schemas-upnp-org:device:RPi_Garage_Monitor:1"
	rec := ParseMessage(raw)

	assert.Equal(t, "04", rec.DeviceType)
	assert.Equal(t, "B827EB01F318", rec.MAC)
	assert.Equal(t, "C0A80132", rec.IP)
	assert.Equal(t, "1F90", rec.Port)
	assert.Equal(t, "/status", rec.SSDPPath)
	assert.Equal(t, "uuid:d1c58eb4-5e07-47f5-a385-f6dcbbd9b9e2::urn:schemas-upnp-org:device:RPi_Garage_Monitor:1", rec.SSDPUSN)
	assert.Equal(t, "urn:schemas-upnp-org:device:RPi_Garage_Monitor:1", rec.SSDPTerm)
	assert.Empty(t, rec.Body)
}
