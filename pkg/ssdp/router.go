package ssdp

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// Poller issues an outbound poll request to a sensor. Implemented by
// the hub service so the router stays free of transport concerns.
type Poller interface {
	Poll(ctx context.Context, s sensor.Sensor) error
}

// Router demultiplexes decoded notification payloads onto registered
// sensors by USN.
type Router struct {
	poller Poller
}

func NewRouter(p Poller) *Router {
	return &Router{poller: p}
}

// Route handles the notification body of a parsed message. Messages
// without a body are not notifications and are ignored. An undecodable
// body drops that message only; an unroutable USN is a silent no-op.
// A poll failure on one matching sensor never blocks the others.
func (rt *Router) Route(ctx context.Context, rec Record, reg *sensor.Registry) error {
	if rec.Body == "" {
		return nil
	}

	payload, err := DecodePayload(rec.Body)
	if err != nil {
		log.Warn().Err(err).Msg("Dropping undecodable notification")
		return err
	}

	matches := reg.Match(payload.USN)
	if len(matches) == 0 {
		log.Debug().Str("usn", payload.USN).Msg("Notification matches no registered sensor")
		return nil
	}

	switch payload.Cmd {
	case CmdPoll:
		for _, s := range matches {
			if err := rt.poller.Poll(ctx, s); err != nil {
				log.Warn().Err(err).Str("usn", s.USN).Msg("Poll request skipped")
			}
		}
	case CmdStatusOpen:
		reg.SetContact(payload.USN, sensor.ContactOpen)
	case CmdStatusClosed:
		reg.SetContact(payload.USN, sensor.ContactClosed)
	default:
		log.Debug().Str("usn", payload.USN).Msg("Ignoring unrecognized command")
	}
	return nil
}
