package sensor

import (
	"sort"
	"sync"
	"time"
)

// ContactHook is invoked after a sensor's contact value changes.
// It runs outside the registry lock.
type ContactHook func(s Sensor, previous ContactValue)

// Registry owns all registered sensors for a hub. It is the only
// component allowed to add or remove a Sensor; the event router and the
// hub mutate sensors exclusively through registry methods.
//
// Sensors are held in a slice and matched by linear scan: the population
// is small, and scanning keeps routing correct even if duplicate USNs
// ever slip in (every match is applied).
type Registry struct {
	mu      sync.RWMutex
	sensors []*Sensor
	hook    ContactHook
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// SetContactHook installs the callback fired on contact changes.
// Must be called before concurrent use.
func (r *Registry) SetContactHook(hook ContactHook) {
	r.hook = hook
}

// Add registers a new sensor. The USN must not already be registered.
func (r *Registry) Add(s Sensor) error {
	if s.Contact == "" {
		s.Contact = ContactUnknown
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sensors {
		if existing.USN == s.USN {
			return ErrAlreadyRegistered
		}
	}
	cp := s
	r.sensors = append(r.sensors, &cp)
	return nil
}

// Remove unregisters every sensor with the given USN.
func (r *Registry) Remove(usn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.sensors[:0]
	removed := false
	for _, s := range r.sensors {
		if s.USN == usn {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	r.sensors = kept
	if !removed {
		return ErrNotFound
	}
	return nil
}

// Get returns a copy of the sensor with the given USN.
func (r *Registry) Get(usn string) (Sensor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sensors {
		if s.USN == usn {
			return *s, nil
		}
	}
	return Sensor{}, ErrNotFound
}

// Match returns copies of every sensor whose USN equals usn. An empty
// result is not an error: the notification simply was not addressed to
// any sensor owned by this hub.
func (r *Registry) Match(usn string) []Sensor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Sensor
	for _, s := range r.sensors {
		if s.USN == usn {
			out = append(out, *s)
		}
	}
	return out
}

// List returns copies of all registered sensors, ordered by USN.
func (r *Registry) List() []Sensor {
	r.mu.RLock()
	out := make([]Sensor, 0, len(r.sensors))
	for _, s := range r.sensors {
		out = append(out, *s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].USN < out[j].USN })
	return out
}

// Len returns the number of registered sensors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sensors)
}

// SetContact applies a contact value to every sensor matching usn and
// reports whether any sensor actually changed. The contact hook fires
// once per changed sensor, after the lock is released, so hook work
// (persistence, fan-out) never blocks routing for other sensors.
func (r *Registry) SetContact(usn string, value ContactValue) bool {
	type change struct {
		snapshot Sensor
		previous ContactValue
	}

	now := time.Now()

	r.mu.Lock()
	var changes []change
	for _, s := range r.sensors {
		if s.USN != usn {
			continue
		}
		s.LastSeen = now
		if s.Contact == value {
			continue
		}
		prev := s.Contact
		s.Contact = value
		changes = append(changes, change{snapshot: *s, previous: prev})
	}
	hook := r.hook
	r.mu.Unlock()

	if hook != nil {
		for _, c := range changes {
			hook(c.snapshot, c.previous)
		}
	}
	return len(changes) > 0
}

// Update applies fn to the sensor with the given USN under the write
// lock and returns a copy of the result. Contact values must not be
// changed here; that path is SetContact.
func (r *Registry) Update(usn string, fn func(*Sensor)) (Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sensors {
		if s.USN == usn {
			fn(s)
			return *s, nil
		}
	}
	return Sensor{}, ErrNotFound
}
