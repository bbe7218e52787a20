package sensor

import "context"

// Controller is the hub-side sensor control surface consumed by the
// HTTP API and the MCP server. pkg/hub provides the implementation.
type Controller interface {
	// ListSensors returns all registered sensors
	ListSensors(ctx context.Context) ([]Sensor, error)

	// GetSensor returns a single sensor by USN
	GetSensor(ctx context.Context, usn string) (*Sensor, error)

	// RegisterSensor manually registers a sensor
	RegisterSensor(ctx context.Context, reg Registration) (*Sensor, error)

	// RemoveSensor unregisters a sensor (device unpairing)
	RemoveSensor(ctx context.Context, usn string) error

	// PollSensor re-subscribes to refresh the sensor's reported state
	PollSensor(ctx context.Context, usn string) error

	// RefreshSensor is identical in effect to PollSensor but reachable
	// from a different trigger (e.g. a UI action)
	RefreshSensor(ctx context.Context, usn string) error

	// SubscribeSensor issues an explicit event subscription
	SubscribeSensor(ctx context.Context, usn string) error

	// IngestMessage handles one raw discovery/notification message
	IngestMessage(ctx context.Context, raw string) error

	// Ready reports whether the hub is serving
	Ready() bool
}

// EventSubscriber is the interface for subscribing to sensor events.
type EventSubscriber interface {
	// SubscribeEvents returns a channel that receives sensor events
	SubscribeEvents() chan Event

	// UnsubscribeEvents removes a subscription
	UnsubscribeEvents(ch chan Event)
}
