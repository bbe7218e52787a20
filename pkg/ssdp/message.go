// Package ssdp implements the discovery-and-eventing protocol core used
// to link contact sensors to the hub: parsing SSDP-style discovery and
// notification messages, decoding hex-encoded endpoints, building
// subscription requests, and routing notification payloads to
// registered sensors.
package ssdp

import "strings"

// Record is a discovery/notification message parsed into typed fields.
// It is built fresh for every inbound message, never mutated afterwards,
// and discarded once the message is handled.
//
// Fields hold values exactly as they appear on the wire: IP and Port stay
// hex-encoded (decoding belongs to the address codec) and Body stays
// base64-encoded. A field is only populated when its parsed value is
// non-empty, so the zero value always means "not present".
type Record struct {
	DeviceType string
	MAC        string
	IP         string // hex-encoded IPv4, from networkAddress:
	Port       string // hex-encoded port, from deviceAddress:
	SSDPPath   string
	SSDPUSN    string
	SSDPTerm   string
	Headers    string
	Body       string // base64-encoded XML payload
}

// fieldTable maps recognized key prefixes to Record setters, in match
// order. networkAddress and deviceAddress use labels that differ from
// their target fields (IP and Port); that mismatch is part of the wire
// format and must be preserved.
var fieldTable = []struct {
	prefix string
	assign func(*Record, string)
}{
	{"devicetype:", func(r *Record, v string) { r.DeviceType = v }},
	{"mac:", func(r *Record, v string) { r.MAC = v }},
	{"networkAddress:", func(r *Record, v string) { r.IP = v }},
	{"deviceAddress:", func(r *Record, v string) { r.Port = v }},
	{"ssdpPath:", func(r *Record, v string) { r.SSDPPath = v }},
	{"ssdpUSN:", func(r *Record, v string) { r.SSDPUSN = v }},
	{"ssdpTerm:", func(r *Record, v string) { r.SSDPTerm = v }},
	{"headers", func(r *Record, v string) { r.Headers = v }},
	{"body", func(r *Record, v string) { r.Body = v }},
}

// ParseMessage parses a flat, comma-separated key:value message into a
// Record. Segments matching no recognized prefix are silently ignored,
// keeping the parser forward-compatible with unknown fields. Parsing
// never fails: unparseable or empty input yields a Record with all
// fields absent.
func ParseMessage(raw string) Record {
	var rec Record
	for _, seg := range strings.Split(raw, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		for _, f := range fieldTable {
			if !strings.HasPrefix(seg, f.prefix) {
				continue
			}
			rest := strings.TrimPrefix(seg[len(f.prefix):], ":")
			if v := strings.TrimSpace(rest); v != "" {
				f.assign(&rec, v)
			}
			break
		}
	}
	return rec
}
