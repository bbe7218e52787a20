package ssdp

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	body := base64.StdEncoding.EncodeToString([]byte("<msg><cmd>status-open</cmd><usn>uuid:42</usn></msg>"))

	p, err := DecodePayload(body)
	require.NoError(t, err)
	assert.Equal(t, CmdStatusOpen, p.Cmd)
	assert.Equal(t, "uuid:42", p.USN)
}

func TestDecodePayload_Malformed(t *testing.T) {
	_, err := DecodePayload("%%% not base64 %%%")
	assert.ErrorIs(t, err, ErrMalformedPayload)

	broken := base64.StdEncoding.EncodeToString([]byte("<msg><cmd>poll"))
	_, err = DecodePayload(broken)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestPayloadRoundTrip(t *testing.T) {
	usn := "uuid:d1c58eb4-5e07-47f5-a385-f6dcbbd9b9e2::urn:schemas-upnp-org:device:RPi_Garage_Monitor:1"

	for _, cmd := range []Command{CmdPoll, CmdStatusOpen, CmdStatusClosed} {
		p, err := DecodePayload(EncodePayload(cmd, usn))
		require.NoError(t, err)
		assert.Equal(t, cmd, p.Cmd)
		assert.Equal(t, usn, p.USN)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		raw  string
		want Command
	}{
		{"poll", CmdPoll},
		{"status-open", CmdStatusOpen},
		{"status-closed", CmdStatusClosed},
		{"Poll", CmdUnknown},
		{"STATUS-OPEN", CmdUnknown},
		{"status-open ", CmdUnknown},
		{"status-ajar", CmdUnknown},
		{"", CmdUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCommand(tt.raw), "raw=%q", tt.raw)
	}
}
