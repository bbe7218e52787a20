// Package mqtt publishes sensor state to an MQTT broker, with optional
// Home Assistant auto-discovery, so contact sensors show up in home
// automation without manual configuration.
package mqtt

import (
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/rllynch/pi-garage-smartthings/pkg/db"
	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

const publishTimeout = 5 * time.Second

// Publisher forwards sensor events to an MQTT broker. With no broker
// URL configured it runs in no-op mode and drops everything.
type Publisher struct {
	cfg    *db.MQTTBroker
	client pahomqtt.Client
}

// NewPublisher creates a publisher from broker configuration. cfg may
// be nil, which behaves like an empty broker URL.
func NewPublisher(cfg *db.MQTTBroker) *Publisher {
	if cfg == nil {
		cfg = &db.MQTTBroker{}
	}
	return &Publisher{cfg: cfg}
}

// Start connects to the broker. Connection failures are logged, not
// fatal: the paho client reconnects in the background.
func (p *Publisher) Start() {
	if p.cfg.BrokerURL == "" {
		log.Info().Msg("MQTT publishing disabled (no broker configured)")
		return
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(p.cfg.BrokerURL).
		SetClientID(p.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(publishTimeout)

	p.client = pahomqtt.NewClient(opts)
	token := p.client.Connect()

	switch {
	case !token.WaitTimeout(publishTimeout):
		log.Warn().Str("broker", p.cfg.BrokerURL).Msg("MQTT connection timed out; reconnecting in background")
	case token.Error() != nil:
		log.Warn().Err(token.Error()).Str("broker", p.cfg.BrokerURL).Msg("MQTT connection failed; reconnecting in background")
	default:
		log.Info().Str("broker", p.cfg.BrokerURL).Msg("Connected to MQTT broker")
	}
}

// Stop disconnects from the broker.
func (p *Publisher) Stop() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
		log.Info().Msg("MQTT disconnected")
	}
}

// Run consumes sensor events until the channel closes. Intended to be
// run as a goroutine fed by the hub's event subscription.
func (p *Publisher) Run(events <-chan sensor.Event) {
	for evt := range events {
		p.handle(evt)
	}
}

func (p *Publisher) handle(evt sensor.Event) {
	if p.client == nil || !p.client.IsConnected() {
		return
	}
	if evt.Sensor == nil {
		return
	}

	switch evt.Type {
	case sensor.EventSensorDiscovered, sensor.EventSensorUpdated:
		if p.cfg.HADiscovery {
			p.publishDiscovery(BuildSensorDiscoveryConfig(evt.Sensor, p.cfg.TopicPrefix, p.cfg.HADiscoveryPrefix))
		}
		p.publishContact(evt.Sensor)

	case sensor.EventContactChanged:
		p.publishContact(evt.Sensor)

	case sensor.EventSensorRemoved:
		if p.cfg.HADiscovery {
			p.publishDiscovery(BuildSensorRemovalConfig(evt.Sensor.USN, p.cfg.HADiscoveryPrefix))
		}
	}
}

func (p *Publisher) publishContact(s *sensor.Sensor) {
	topic := ContactTopic(p.cfg.TopicPrefix, s.USN)
	p.publish(topic, []byte(s.Contact), p.cfg.Retain)
}

func (p *Publisher) publishDiscovery(cfg DiscoveryConfig) {
	// Discovery configs are always retained so HA picks them up on restart.
	p.publish(cfg.Topic, cfg.Payload, true)
}

func (p *Publisher) publish(topic string, payload []byte, retain bool) {
	token := p.client.Publish(topic, byte(p.cfg.QoS), retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		log.Warn().Str("topic", topic).Msg("MQTT publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("MQTT publish failed")
		return
	}
	log.Debug().Str("topic", topic).Msg("MQTT published")
}
