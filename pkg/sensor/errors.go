package sensor

import "errors"

var (
	// ErrNotFound indicates no sensor with the given USN is registered
	ErrNotFound = errors.New("sensor not found")

	// ErrAlreadyRegistered indicates a sensor with the same USN exists
	ErrAlreadyRegistered = errors.New("sensor already registered")

	// ErrValidation indicates a registration payload failed schema validation
	ErrValidation = errors.New("validation error")
)
