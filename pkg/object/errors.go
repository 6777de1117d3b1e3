package object

import "errors"

// Sentinel errors for the object model. Callers match them with errors.Is.
var (
	// ErrNotRegistered is returned when a tag has no recorded type.
	ErrNotRegistered = errors.New("type tag not registered")

	// ErrIndexOutOfRange is returned by Array.At and Shape.At for indexes
	// outside [0, Size()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyNotFound is returned by Map.Get for absent keys.
	ErrKeyNotFound = errors.New("key not found")
)
