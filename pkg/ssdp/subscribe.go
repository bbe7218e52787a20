package ssdp

import (
	"context"
	"fmt"
	"net/http"
)

const (
	// MethodSubscribe is the UPnP eventing verb used to open or renew a
	// subscription on a sensor.
	MethodSubscribe = "SUBSCRIBE"

	notificationType = "upnp:event"

	// subscriptionTimeout is sent verbatim in the TIMEOUT header. It is
	// protocol data describing how long the sensor keeps the
	// subscription, not a local deadline.
	subscriptionTimeout = "Second-3600"
)

// Request is an outbound protocol request addressed to a sensor,
// expressed independently of any HTTP client.
type Request struct {
	Method  string
	Host    string // "ip:port" of the sensor
	Path    string
	Headers map[string]string
}

// BuildSubscribeRequest builds the SUBSCRIBE request that opens or
// renews an event subscription on a sensor. remote is the sensor's
// resolved "ip:port", callback is the hub's reachable "ip:port", and
// callbackSuffix distinguishes hubs sharing one callback address (it
// must be empty or begin with '/').
func BuildSubscribeRequest(remote, callback, path, callbackSuffix string) Request {
	return Request{
		Method: MethodSubscribe,
		Host:   remote,
		Path:   path,
		Headers: map[string]string{
			"HOST":     remote,
			"CALLBACK": fmt.Sprintf("<http://%s/notify%s>", callback, callbackSuffix),
			"NT":       notificationType,
			"TIMEOUT":  subscriptionTimeout,
		},
	}
}

// BuildGetRequest builds a plain GET against a sensor path. No current
// call site issues it; refresh always re-subscribes instead, but the
// shape is kept for sensors that expose a pollable status page.
func BuildGetRequest(remote, path string) Request {
	return Request{
		Method:  http.MethodGet,
		Host:    remote,
		Path:    path,
		Headers: map[string]string{"HOST": remote},
	}
}

// HTTP materializes the request as a *http.Request bound to ctx.
func (r Request) HTTP(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, "http://"+r.Host+r.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.Method, r.Host, err)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
