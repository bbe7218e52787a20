package hub

import (
	"sync"

	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// eventBuffer is the per-subscriber channel depth. A subscriber that
// falls further behind loses events rather than stalling the hub.
const eventBuffer = 16

// eventHub fans sensor events out to any number of subscribers.
type eventHub struct {
	mu          sync.Mutex
	subscribers map[chan sensor.Event]struct{}
	closed      bool
}

func newEventHub() *eventHub {
	return &eventHub{
		subscribers: make(map[chan sensor.Event]struct{}),
	}
}

func (h *eventHub) subscribe() chan sensor.Event {
	ch := make(chan sensor.Event, eventBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subscribers[ch] = struct{}{}
	return ch
}

func (h *eventHub) unsubscribe(ch chan sensor.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

func (h *eventHub) publish(evt sensor.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- evt:
		default:
			// Subscriber is full; drop rather than block.
		}
	}
}

func (h *eventHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
