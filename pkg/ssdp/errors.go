package ssdp

import "errors"

var (
	// ErrMalformedAddress indicates a hex-encoded IP or port failed to decode
	ErrMalformedAddress = errors.New("malformed hex address")

	// ErrEndpointUnresolved indicates no usable IP/port could be derived
	// for a sensor; the caller must skip the network action
	ErrEndpointUnresolved = errors.New("endpoint unresolved")

	// ErrMalformedPayload indicates a notification body failed base64 or
	// XML decoding; the triggering message is dropped, never the router
	ErrMalformedPayload = errors.New("malformed notification payload")
)
