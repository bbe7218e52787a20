package ssdp

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
)

// Command is a notification command, decoded once from its wire string.
type Command int

const (
	CmdUnknown Command = iota
	CmdPoll
	CmdStatusOpen
	CmdStatusClosed
)

// Wire command literals. Matching is case-sensitive and exact;
// anything else decodes to CmdUnknown and is ignored downstream.
const (
	cmdPollWire         = "poll"
	cmdStatusOpenWire   = "status-open"
	cmdStatusClosedWire = "status-closed"
)

// ParseCommand decodes a raw command string into a Command.
func ParseCommand(s string) Command {
	switch s {
	case cmdPollWire:
		return CmdPoll
	case cmdStatusOpenWire:
		return CmdStatusOpen
	case cmdStatusClosedWire:
		return CmdStatusClosed
	default:
		return CmdUnknown
	}
}

func (c Command) String() string {
	switch c {
	case CmdPoll:
		return cmdPollWire
	case CmdStatusOpen:
		return cmdStatusOpenWire
	case CmdStatusClosed:
		return cmdStatusClosedWire
	default:
		return "unknown"
	}
}

// Payload is the decoded body of a notification message: the command to
// apply and the USN of the sensor it is addressed to.
type Payload struct {
	Cmd Command
	USN string
}

// msgDoc mirrors the notification XML: <msg><cmd>…</cmd><usn>…</usn></msg>
type msgDoc struct {
	XMLName xml.Name `xml:"msg"`
	Cmd     string   `xml:"cmd"`
	USN     string   `xml:"usn"`
}

// DecodePayload decodes a base64-encoded XML notification body into a
// Payload. Both decode stages report ErrMalformedPayload; callers drop
// the single offending message and keep processing.
func DecodePayload(body string) (Payload, error) {
	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: base64: %v", ErrMalformedPayload, err)
	}

	var doc msgDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return Payload{}, fmt.Errorf("%w: xml: %v", ErrMalformedPayload, err)
	}

	return Payload{Cmd: ParseCommand(doc.Cmd), USN: doc.USN}, nil
}

// EncodePayload builds the base64-encoded XML body for a command and
// USN. The inverse of DecodePayload, used by the ingest surface and in
// tests to produce wire-shaped notifications.
func EncodePayload(cmd Command, usn string) string {
	doc := fmt.Sprintf("<msg><cmd>%s</cmd><usn>%s</usn></msg>", cmd, usn)
	return base64.StdEncoding.EncodeToString([]byte(doc))
}
