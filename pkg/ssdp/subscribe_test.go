package ssdp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSubscribeRequest(t *testing.T) {
	req := BuildSubscribeRequest("192.168.0.50:8080", "192.168.0.10:39500", "/status", "")

	assert.Equal(t, MethodSubscribe, req.Method)
	assert.Equal(t, "192.168.0.50:8080", req.Host)
	assert.Equal(t, "/status", req.Path)
	assert.Equal(t, map[string]string{
		"HOST":     "192.168.0.50:8080",
		"CALLBACK": "<http://192.168.0.10:39500/notify>",
		"NT":       "upnp:event",
		"TIMEOUT":  "Second-3600",
	}, req.Headers)
}

func TestBuildSubscribeRequest_CallbackSuffix(t *testing.T) {
	req := BuildSubscribeRequest("10.0.0.2:80", "10.0.0.1:39500", "/status", "/garage2")
	assert.Equal(t, "<http://10.0.0.1:39500/notify/garage2>", req.Headers["CALLBACK"])
}

func TestBuildSubscribeRequest_FixedHeaders(t *testing.T) {
	for _, remote := range []string{"10.0.0.2:80", "172.16.4.9:1234"} {
		req := BuildSubscribeRequest(remote, "10.0.0.1:39500", "/status", "")
		assert.Equal(t, "upnp:event", req.Headers["NT"])
		assert.Equal(t, "Second-3600", req.Headers["TIMEOUT"])
		cb := req.Headers["CALLBACK"]
		assert.Equal(t, byte('<'), cb[0])
		assert.Equal(t, byte('>'), cb[len(cb)-1])
	}
}

func TestBuildGetRequest(t *testing.T) {
	req := BuildGetRequest("192.168.0.50:8080", "/status")
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, map[string]string{"HOST": "192.168.0.50:8080"}, req.Headers)
}

func TestRequestHTTP(t *testing.T) {
	req := BuildSubscribeRequest("192.168.0.50:8080", "192.168.0.10:39500", "/status", "")

	httpReq, err := req.HTTP(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "SUBSCRIBE", httpReq.Method)
	assert.Equal(t, "http://192.168.0.50:8080/status", httpReq.URL.String())
	assert.Equal(t, "<http://192.168.0.10:39500/notify>", httpReq.Header.Get("CALLBACK"))
	assert.Equal(t, "upnp:event", httpReq.Header.Get("NT"))
	assert.Equal(t, "Second-3600", httpReq.Header.Get("TIMEOUT"))
	assert.Nil(t, httpReq.Body)
}
