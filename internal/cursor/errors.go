package cursor

import "errors"

// Common cursor storage errors
var (
	// ErrStoreClosed indicates that storage is closed
	ErrStoreClosed = errors.New("cursor store is closed")

	// ErrInvalidCursor indicates that a persisted value cannot be parsed
	ErrInvalidCursor = errors.New("invalid cursor value")

	// ErrUnsupportedDriver indicates an unknown cursor driver in configuration
	ErrUnsupportedDriver = errors.New("unsupported cursor driver")
)
