// Package hub wires the protocol core to persistence and transport: it
// owns the sensor registry, issues subscription requests, renews them
// before they lapse, and fans sensor events out to API consumers.
package hub

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rllynch/pi-garage-smartthings/pkg/db"
	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
	"github.com/rllynch/pi-garage-smartthings/pkg/ssdp"
)

// renewInterval is how often active subscriptions are renewed. It sits
// comfortably inside the Second-3600 lifetime sensors are asked for.
const renewInterval = 50 * time.Minute

// Service implements sensor.Controller on top of the registry, the
// store, and the subscription sender.
type Service struct {
	store     db.SensorStore
	profileID int64
	registry  *sensor.Registry
	router    *ssdp.Router
	sender    *sender

	events *eventHub
	ready  atomic.Bool
	stop   chan struct{}
	done   chan struct{}
}

// Options configures a hub Service.
type Options struct {
	Store     db.SensorStore
	ProfileID int64

	// Callback is the "host:port" sensors deliver notifications to.
	Callback string

	// CallbackSuffix distinguishes hubs sharing a callback address.
	// Empty or of the form "/name".
	CallbackSuffix string
}

// New creates a hub Service and loads persisted sensors into the
// registry so state survives restarts.
func New(ctx context.Context, opts Options) (*Service, error) {
	s := &Service{
		store:     opts.Store,
		profileID: opts.ProfileID,
		registry:  sensor.NewRegistry(),
		sender:    newSender(opts.Callback, opts.CallbackSuffix),
		events:    newEventHub(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	s.router = ssdp.NewRouter(s)
	s.registry.SetContactHook(s.onContactChange)

	persisted, err := opts.Store.List(ctx, opts.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sensors: %w", err)
	}
	for _, p := range persisted {
		if err := s.registry.Add(*p); err != nil {
			log.Warn().Err(err).Str("usn", p.USN).Msg("Skipping persisted sensor")
		}
	}

	return s, nil
}

// Start launches the subscription renewal loop and marks the hub ready.
func (s *Service) Start() {
	s.ready.Store(true)
	go s.renewLoop()
}

// Close stops the renewal loop and releases the event hub.
func (s *Service) Close() {
	s.ready.Store(false)
	close(s.stop)
	<-s.done
	s.events.close()
}

// Ready reports whether the hub is serving.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// ListSensors returns all registered sensors.
func (s *Service) ListSensors(_ context.Context) ([]sensor.Sensor, error) {
	return s.registry.List(), nil
}

// GetSensor returns a single sensor by USN.
func (s *Service) GetSensor(_ context.Context, usn string) (*sensor.Sensor, error) {
	got, err := s.registry.Get(usn)
	if err != nil {
		return nil, err
	}
	return &got, nil
}

// RegisterSensor manually registers a sensor and immediately attempts a
// subscription so events start flowing without waiting for discovery.
func (s *Service) RegisterSensor(ctx context.Context, reg sensor.Registration) (*sensor.Sensor, error) {
	newSensor := sensor.Sensor{
		USN:        reg.USN,
		Name:       reg.Name,
		DeviceType: reg.DeviceType,
		MAC:        reg.MAC,
		HexIP:      reg.HexIP,
		HexPort:    reg.HexPort,
		SSDPPath:   reg.SSDPPath,
		NetworkID:  reg.NetworkID,
		Contact:    sensor.ContactUnknown,
	}
	if err := s.registry.Add(newSensor); err != nil {
		return nil, err
	}
	if err := s.store.Upsert(ctx, s.profileID, &newSensor); err != nil {
		return nil, fmt.Errorf("failed to persist sensor: %w", err)
	}

	s.events.publish(sensor.Event{
		Type:      sensor.EventSensorDiscovered,
		Sensor:    &newSensor,
		Timestamp: time.Now(),
	})

	if err := s.subscribe(ctx, newSensor); err != nil {
		log.Warn().Err(err).Str("usn", newSensor.USN).Msg("Initial subscription failed")
	}

	got, err := s.registry.Get(newSensor.USN)
	if err != nil {
		return nil, err
	}
	return &got, nil
}

// RemoveSensor unregisters a sensor and deletes its persisted row.
func (s *Service) RemoveSensor(ctx context.Context, usn string) error {
	removed, err := s.registry.Get(usn)
	if err != nil {
		return err
	}
	if err := s.registry.Remove(usn); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, usn); err != nil && !errors.Is(err, db.ErrSensorNotFound) {
		return fmt.Errorf("failed to delete sensor: %w", err)
	}

	s.events.publish(sensor.Event{
		Type:      sensor.EventSensorRemoved,
		Sensor:    &removed,
		Timestamp: time.Now(),
	})
	return nil
}

// PollSensor asks a sensor to report its state. The sensor family has
// no query endpoint; a fresh SUBSCRIBE makes it push its current state.
func (s *Service) PollSensor(ctx context.Context, usn string) error {
	return s.subscribeByUSN(ctx, usn)
}

// RefreshSensor re-establishes the event subscription.
func (s *Service) RefreshSensor(ctx context.Context, usn string) error {
	return s.subscribeByUSN(ctx, usn)
}

// SubscribeSensor issues an explicit event subscription.
func (s *Service) SubscribeSensor(ctx context.Context, usn string) error {
	return s.subscribeByUSN(ctx, usn)
}

// Poll satisfies ssdp.Poller for notification-triggered polls.
func (s *Service) Poll(ctx context.Context, target sensor.Sensor) error {
	return s.subscribe(ctx, target)
}

// IngestMessage handles one raw discovery or notification message.
// Messages with a body are routed as notifications; bodyless messages
// carrying a USN are treated as discovery announcements and upsert the
// sensor's registration.
func (s *Service) IngestMessage(ctx context.Context, raw string) error {
	rec := ssdp.ParseMessage(raw)

	if rec.Body != "" {
		return s.router.Route(ctx, rec, s.registry)
	}

	if rec.SSDPUSN == "" {
		log.Debug().Msg("Ignoring message with no body and no USN")
		return nil
	}
	return s.handleDiscovery(ctx, rec)
}

// handleDiscovery upserts a sensor from a discovery announcement and
// subscribes to it.
func (s *Service) handleDiscovery(ctx context.Context, rec ssdp.Record) (err error) {
	var current sensor.Sensor
	known := true

	current, err = s.registry.Update(rec.SSDPUSN, func(target *sensor.Sensor) {
		applyDiscovery(target, rec)
	})
	if errors.Is(err, sensor.ErrNotFound) {
		known = false
		fresh := sensor.Sensor{USN: rec.SSDPUSN, Contact: sensor.ContactUnknown}
		applyDiscovery(&fresh, rec)
		if err = s.registry.Add(fresh); err != nil {
			return err
		}
		current = fresh
	} else if err != nil {
		return err
	}

	if err := s.store.Upsert(ctx, s.profileID, &current); err != nil {
		return fmt.Errorf("failed to persist sensor: %w", err)
	}

	eventType := sensor.EventSensorUpdated
	if !known {
		eventType = sensor.EventSensorDiscovered
		log.Info().Str("usn", current.USN).Msg("Discovered new sensor")
	}
	s.events.publish(sensor.Event{
		Type:      eventType,
		Sensor:    &current,
		Timestamp: time.Now(),
	})

	if err := s.subscribe(ctx, current); err != nil {
		log.Warn().Err(err).Str("usn", current.USN).Msg("Subscription after discovery failed")
	}
	return nil
}

// applyDiscovery copies the announced fields onto a sensor, leaving
// fields the announcement omitted untouched.
func applyDiscovery(target *sensor.Sensor, rec ssdp.Record) {
	target.LastSeen = time.Now()
	if rec.DeviceType != "" {
		target.DeviceType = rec.DeviceType
	}
	if rec.MAC != "" {
		target.MAC = rec.MAC
	}
	if rec.IP != "" {
		target.HexIP = rec.IP
	}
	if rec.Port != "" {
		target.HexPort = rec.Port
	}
	if rec.SSDPPath != "" {
		target.SSDPPath = rec.SSDPPath
	}
	if rec.IP != "" && rec.Port != "" {
		target.NetworkID = rec.IP + ":" + rec.Port
	}
}

// onContactChange persists the new contact value and publishes a
// contact_changed event. It runs outside the registry lock.
func (s *Service) onContactChange(changed sensor.Sensor, previous sensor.ContactValue) {
	log.Info().
		Str("usn", changed.USN).
		Str("contact", string(changed.Contact)).
		Str("previous", string(previous)).
		Msg("Contact changed")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.SetContact(ctx, changed.USN, changed.Contact); err != nil {
		log.Error().Err(err).Str("usn", changed.USN).Msg("Failed to persist contact change")
	}

	s.events.publish(sensor.Event{
		Type:      sensor.EventContactChanged,
		Sensor:    &changed,
		Previous:  previous,
		Timestamp: time.Now(),
	})
}

func (s *Service) subscribeByUSN(ctx context.Context, usn string) error {
	target, err := s.registry.Get(usn)
	if err != nil {
		return err
	}
	return s.subscribe(ctx, target)
}

// subscribe resolves the sensor's endpoint and sends a SUBSCRIBE. When
// no endpoint can be resolved the action is skipped with a warning; the
// hub keeps running.
func (s *Service) subscribe(ctx context.Context, target sensor.Sensor) error {
	endpoint, err := ssdp.ResolveEndpoint(target.HexIP, target.HexPort, target.NetworkID)
	if err != nil {
		log.Warn().Err(err).Str("usn", target.USN).Msg("Cannot resolve sensor endpoint")
		return err
	}

	if err := s.sender.subscribe(ctx, endpoint, target.SSDPPath); err != nil {
		return err
	}

	now := time.Now()
	if _, err := s.registry.Update(target.USN, func(u *sensor.Sensor) {
		u.LastSubscribed = now
	}); err != nil {
		return err
	}
	if err := s.store.SetSubscribed(ctx, target.USN, now); err != nil && !errors.Is(err, db.ErrSensorNotFound) {
		log.Error().Err(err).Str("usn", target.USN).Msg("Failed to persist subscription time")
	}

	log.Debug().Str("usn", target.USN).Str("endpoint", endpoint).Msg("Subscribed")
	return nil
}

// renewLoop re-subscribes to every sensor on a fixed interval so
// subscriptions never lapse.
func (s *Service) renewLoop() {
	defer close(s.done)

	ticker := time.NewTicker(renewInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.renewAll()
		}
	}
}

func (s *Service) renewAll() {
	ctx, cancel := context.WithTimeout(context.Background(), renewInterval/2)
	defer cancel()

	for _, target := range s.registry.List() {
		if err := s.subscribe(ctx, target); err != nil {
			log.Warn().Err(err).Str("usn", target.USN).Msg("Subscription renewal failed")
		}
	}
}

// SubscribeEvents returns a channel that receives sensor events.
func (s *Service) SubscribeEvents() chan sensor.Event {
	return s.events.subscribe()
}

// UnsubscribeEvents removes a subscription.
func (s *Service) UnsubscribeEvents(ch chan sensor.Event) {
	s.events.unsubscribe(ch)
}
