package ssdp

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DecodeAddress converts a compact hex encoding of an IPv4 address and
// port into a dotted address and a port number. The IP must be exactly
// 8 hex digits (4 bytes, big-endian by pair); the port is a single
// base-16 integer. Hex digits are case-insensitive.
func DecodeAddress(hexIP, hexPort string) (string, int, error) {
	if len(hexIP) != 8 {
		return "", 0, fmt.Errorf("%w: ip %q must be exactly 8 hex digits", ErrMalformedAddress, hexIP)
	}

	octets := make([]string, 4)
	for i := 0; i < 4; i++ {
		b, err := strconv.ParseUint(hexIP[i*2:i*2+2], 16, 8)
		if err != nil {
			return "", 0, fmt.Errorf("%w: ip %q is not hexadecimal", ErrMalformedAddress, hexIP)
		}
		octets[i] = strconv.FormatUint(b, 10)
	}

	port, err := strconv.ParseUint(hexPort, 16, 16)
	if err != nil {
		return "", 0, fmt.Errorf("%w: port %q is not hexadecimal", ErrMalformedAddress, hexPort)
	}

	return strings.Join(octets, "."), int(port), nil
}

// ResolveEndpoint derives a reachable "ip:port" endpoint for a sensor.
// The explicit hex-encoded fields are preferred; when either is absent
// the composite network id is split on a single ':' into hex-IP and
// hex-port. Any other shape means no usable endpoint exists and the
// caller must skip the network action.
func ResolveEndpoint(hexIP, hexPort, networkID string) (string, error) {
	if hexIP == "" || hexPort == "" {
		parts := strings.Split(networkID, ":")
		if len(parts) != 2 {
			return "", fmt.Errorf("%w: network id %q is not of the form hexip:hexport", ErrEndpointUnresolved, networkID)
		}
		hexIP, hexPort = parts[0], parts[1]
	}

	ip, port, err := DecodeAddress(hexIP, hexPort)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(ip, strconv.Itoa(port)), nil
}
