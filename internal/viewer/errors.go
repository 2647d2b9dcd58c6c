package viewer

import "errors"

var (
	// ErrInvalidDirection is returned for navigation or zoom directions
	// outside the defined set. It signals a caller bug.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrIndexOutOfRange is returned by Open for an index outside the collection.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyCollection is returned when an operation needs at least one item.
	ErrEmptyCollection = errors.New("empty collection")
)
