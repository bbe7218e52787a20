package hub

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rllynch/pi-garage-smartthings/pkg/db"
	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
	"github.com/rllynch/pi-garage-smartthings/pkg/ssdp"
)

// fakeSensor is an httptest server that records every request a sensor
// would receive.
type fakeSensor struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

func newFakeSensor(t *testing.T) *fakeSensor {
	t.Helper()
	f := &fakeSensor{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Clone(context.Background()))
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSensor) received() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

// hexEndpoint converts the server's "ip:port" into the hex encoding
// sensors announce themselves with.
func (f *fakeSensor) hexEndpoint(t *testing.T) (string, string) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(f.srv.Listener.Addr().String())
	require.NoError(t, err)

	ip := net.ParseIP(host).To4()
	require.NotNil(t, ip)
	hexIP := fmt.Sprintf("%02X%02X%02X%02X", ip[0], ip[1], ip[2], ip[3])

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return hexIP, fmt.Sprintf("%X", port)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open(filepath.Join(t.TempDir(), "hub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate(ctx))
	require.NoError(t, database.Bootstrap(ctx))

	profile, err := database.Profiles().GetActive(ctx)
	require.NoError(t, err)

	svc, err := New(ctx, Options{
		Store:     database.Sensors(),
		ProfileID: profile.ID,
		Callback:  "192.168.0.10:39500",
	})
	require.NoError(t, err)

	svc.Start()
	t.Cleanup(svc.Close)
	return svc
}

func TestRegisterSensor_SubscribesImmediately(t *testing.T) {
	fs := newFakeSensor(t)
	hexIP, hexPort := fs.hexEndpoint(t)
	svc := newTestService(t)

	registered, err := svc.RegisterSensor(context.Background(), sensor.Registration{
		USN:      "uuid:garage1",
		Name:     "Garage Door",
		HexIP:    hexIP,
		HexPort:  hexPort,
		SSDPPath: "/status",
	})
	require.NoError(t, err)
	assert.False(t, registered.LastSubscribed.IsZero())

	reqs := fs.received()
	require.Len(t, reqs, 1)
	assert.Equal(t, "SUBSCRIBE", reqs[0].Method)
	assert.Equal(t, "/status", reqs[0].URL.Path)
	assert.Equal(t, "<http://192.168.0.10:39500/notify>", reqs[0].Header.Get("CALLBACK"))
	assert.Equal(t, "upnp:event", reqs[0].Header.Get("NT"))
	assert.Equal(t, "Second-3600", reqs[0].Header.Get("TIMEOUT"))
}

func TestRegisterSensor_Duplicate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RegisterSensor(context.Background(), sensor.Registration{USN: "uuid:garage1"})
	require.NoError(t, err)

	_, err = svc.RegisterSensor(context.Background(), sensor.Registration{USN: "uuid:garage1"})
	assert.ErrorIs(t, err, sensor.ErrAlreadyRegistered)
}

func TestIngestMessage_Discovery(t *testing.T) {
	fs := newFakeSensor(t)
	hexIP, hexPort := fs.hexEndpoint(t)
	svc := newTestService(t)

	events := svc.SubscribeEvents()
	defer svc.UnsubscribeEvents(events)

	raw := fmt.Sprintf(
		"devicetype:04, mac:B827EB01F318, networkAddress:%s, deviceAddress:%s, ssdpPath:/status, ssdpUSN:uuid:garage1",
		hexIP, hexPort)
	require.NoError(t, svc.IngestMessage(context.Background(), raw))

	got, err := svc.GetSensor(context.Background(), "uuid:garage1")
	require.NoError(t, err)
	assert.Equal(t, hexIP, got.HexIP)
	assert.Equal(t, hexIP+":"+hexPort, got.NetworkID)
	assert.Equal(t, sensor.ContactUnknown, got.Contact)

	select {
	case evt := <-events:
		assert.Equal(t, sensor.EventSensorDiscovered, evt.Type)
		assert.Equal(t, "uuid:garage1", evt.Sensor.USN)
	case <-time.After(time.Second):
		t.Fatal("no discovery event")
	}

	// The discovery triggered a subscription.
	reqs := fs.received()
	require.Len(t, reqs, 1)
	assert.Equal(t, "SUBSCRIBE", reqs[0].Method)
}

func TestIngestMessage_StatusNotification(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RegisterSensor(context.Background(), sensor.Registration{USN: "uuid:garage1"})
	require.NoError(t, err)

	events := svc.SubscribeEvents()
	defer svc.UnsubscribeEvents(events)

	raw := "ssdpUSN:uuid:garage1, body:" + ssdp.EncodePayload(ssdp.CmdStatusOpen, "uuid:garage1")
	require.NoError(t, svc.IngestMessage(context.Background(), raw))

	got, err := svc.GetSensor(context.Background(), "uuid:garage1")
	require.NoError(t, err)
	assert.Equal(t, sensor.ContactOpen, got.Contact)

	select {
	case evt := <-events:
		assert.Equal(t, sensor.EventContactChanged, evt.Type)
		assert.Equal(t, sensor.ContactUnknown, evt.Previous)
		assert.Equal(t, sensor.ContactOpen, evt.Sensor.Contact)
	case <-time.After(time.Second):
		t.Fatal("no contact event")
	}
}

func TestIngestMessage_PollCommand(t *testing.T) {
	fs := newFakeSensor(t)
	hexIP, hexPort := fs.hexEndpoint(t)
	svc := newTestService(t)

	_, err := svc.RegisterSensor(context.Background(), sensor.Registration{
		USN:      "uuid:garage1",
		HexIP:    hexIP,
		HexPort:  hexPort,
		SSDPPath: "/status",
	})
	require.NoError(t, err)

	raw := "body:" + ssdp.EncodePayload(ssdp.CmdPoll, "uuid:garage1")
	require.NoError(t, svc.IngestMessage(context.Background(), raw))

	// One from registration, one from the poll command.
	assert.Len(t, fs.received(), 2)
}

func TestIngestMessage_MalformedBody(t *testing.T) {
	svc := newTestService(t)

	err := svc.IngestMessage(context.Background(), "body:%%% not base64 %%%")
	assert.ErrorIs(t, err, ssdp.ErrMalformedPayload)
}

func TestPollSensor_UnresolvedEndpoint(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RegisterSensor(context.Background(), sensor.Registration{USN: "uuid:garage1"})
	require.NoError(t, err)

	err = svc.PollSensor(context.Background(), "uuid:garage1")
	assert.ErrorIs(t, err, ssdp.ErrEndpointUnresolved)
}

func TestPollSensor_Unknown(t *testing.T) {
	svc := newTestService(t)
	err := svc.PollSensor(context.Background(), "uuid:nobody")
	assert.ErrorIs(t, err, sensor.ErrNotFound)
}

func TestRemoveSensor(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RegisterSensor(context.Background(), sensor.Registration{USN: "uuid:garage1"})
	require.NoError(t, err)

	events := svc.SubscribeEvents()
	defer svc.UnsubscribeEvents(events)

	require.NoError(t, svc.RemoveSensor(context.Background(), "uuid:garage1"))

	_, err = svc.GetSensor(context.Background(), "uuid:garage1")
	assert.ErrorIs(t, err, sensor.ErrNotFound)

	select {
	case evt := <-events:
		assert.Equal(t, sensor.EventSensorRemoved, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("no removal event")
	}

	assert.ErrorIs(t, svc.RemoveSensor(context.Background(), "uuid:garage1"), sensor.ErrNotFound)
}
