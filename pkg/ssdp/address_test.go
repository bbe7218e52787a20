package ssdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAddress(t *testing.T) {
	tests := []struct {
		name    string
		hexIP   string
		hexPort string
		ip      string
		port    int
	}{
		{"uppercase", "C0A80001", "1F90", "192.168.0.1", 8080},
		{"lowercase", "c0a80001", "1f90", "192.168.0.1", 8080},
		{"all zeros", "00000000", "0", "0.0.0.0", 0},
		{"all ones", "FFFFFFFF", "FFFF", "255.255.255.255", 65535},
		{"plain http", "0A000164", "50", "10.0.1.100", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, port, err := DecodeAddress(tt.hexIP, tt.hexPort)
			require.NoError(t, err)
			assert.Equal(t, tt.ip, ip)
			assert.Equal(t, tt.port, port)
		})
	}
}

func TestDecodeAddress_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		hexIP   string
		hexPort string
	}{
		{"non-hex ip", "ZZZZZZZZ", "1F90"},
		{"short ip", "C0A8", "1F90"},
		{"long ip", "C0A8000102", "1F90"},
		{"empty ip", "", "1F90"},
		{"non-hex port", "C0A80001", "80g0"},
		{"empty port", "C0A80001", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeAddress(tt.hexIP, tt.hexPort)
			assert.ErrorIs(t, err, ErrMalformedAddress)
		})
	}
}

func TestResolveEndpoint(t *testing.T) {
	ep, err := ResolveEndpoint("C0A80001", "1F90", "")
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.1:8080", ep)
}

func TestResolveEndpoint_CompositeFallback(t *testing.T) {
	ep, err := ResolveEndpoint("", "", "C0A80001:1F90")
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.1:8080", ep)

	// A lone explicit port is not enough; the composite id wins.
	ep, err = ResolveEndpoint("", "1F90", "0A000164:50")
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.100:80", ep)
}

func TestResolveEndpoint_Unresolved(t *testing.T) {
	tests := []struct {
		name      string
		networkID string
	}{
		{"empty", ""},
		{"no separator", "C0A80001"},
		{"too many separators", "a:b:c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveEndpoint("", "", tt.networkID)
			assert.ErrorIs(t, err, ErrEndpointUnresolved)
		})
	}
}

func TestResolveEndpoint_CompositeMalformed(t *testing.T) {
	// Two-part ids that fail hex decoding, including USN-shaped strings.
	_, err := ResolveEndpoint("", "", "NOTHEX01:1F90")
	assert.ErrorIs(t, err, ErrMalformedAddress)

	_, err = ResolveEndpoint("", "", "uuid:1234")
	assert.ErrorIs(t, err, ErrMalformedAddress)
}
