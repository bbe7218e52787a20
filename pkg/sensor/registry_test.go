package sensor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddGetRemove(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Add(Sensor{USN: "uuid:1", Name: "garage"}))
	assert.ErrorIs(t, reg.Add(Sensor{USN: "uuid:1"}), ErrAlreadyRegistered)

	s, err := reg.Get("uuid:1")
	require.NoError(t, err)
	assert.Equal(t, "garage", s.Name)
	assert.Equal(t, ContactUnknown, s.Contact, "contact defaults to unknown")

	require.NoError(t, reg.Remove("uuid:1"))
	assert.ErrorIs(t, reg.Remove("uuid:1"), ErrNotFound)
	_, err = reg.Get("uuid:1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_MatchReturnsCopies(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(Sensor{USN: "uuid:1"}))

	matches := reg.Match("uuid:1")
	require.Len(t, matches, 1)

	// Mutating the copy must not leak into the registry.
	matches[0].Contact = ContactOpen
	s, _ := reg.Get("uuid:1")
	assert.Equal(t, ContactUnknown, s.Contact)

	assert.Empty(t, reg.Match("uuid:other"))
}

func TestRegistry_SetContact(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(Sensor{USN: "uuid:1"}))
	require.NoError(t, reg.Add(Sensor{USN: "uuid:2"}))

	var hooked []Event
	reg.SetContactHook(func(s Sensor, prev ContactValue) {
		hooked = append(hooked, Event{Type: EventContactChanged, Sensor: &s, Previous: prev})
	})

	assert.True(t, reg.SetContact("uuid:1", ContactOpen))
	require.Len(t, hooked, 1)
	assert.Equal(t, "uuid:1", hooked[0].Sensor.USN)
	assert.Equal(t, ContactUnknown, hooked[0].Previous)

	// Re-applying the same value is not a change and fires no hook.
	assert.False(t, reg.SetContact("uuid:1", ContactOpen))
	assert.Len(t, hooked, 1)

	// Unknown USN mutates nothing.
	assert.False(t, reg.SetContact("uuid:none", ContactClosed))

	s2, _ := reg.Get("uuid:2")
	assert.Equal(t, ContactUnknown, s2.Contact)
}

func TestRegistry_Update(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(Sensor{USN: "uuid:1"}))

	s, err := reg.Update("uuid:1", func(s *Sensor) {
		s.HexIP = "C0A80001"
		s.HexPort = "1F90"
	})
	require.NoError(t, err)
	assert.Equal(t, "C0A80001", s.HexIP)

	_, err = reg.Update("uuid:none", func(*Sensor) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(Sensor{USN: "uuid:b"}))
	require.NoError(t, reg.Add(Sensor{USN: "uuid:a"}))

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "uuid:a", list[0].USN)
	assert.Equal(t, "uuid:b", list[1].USN)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_ConcurrentMutation(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(Sensor{USN: "uuid:1"}))
	require.NoError(t, reg.Add(Sensor{USN: "uuid:2"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.SetContact("uuid:1", ContactOpen)
			reg.SetContact("uuid:1", ContactClosed)
		}()
		go func() {
			defer wg.Done()
			reg.SetContact("uuid:2", ContactClosed)
			reg.Match("uuid:2")
			reg.List()
		}()
	}
	wg.Wait()

	s1, err := reg.Get("uuid:1")
	require.NoError(t, err)
	assert.Contains(t, []ContactValue{ContactOpen, ContactClosed}, s1.Contact)
}
