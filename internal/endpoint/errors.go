package endpoint

import "errors"

// Common endpoint errors
var (
	// ErrUnreachable indicates that connect or probe failed
	ErrUnreachable = errors.New("endpoint unreachable")

	// ErrNotConnected indicates that the client holds no open handle
	ErrNotConnected = errors.New("endpoint not connected")

	// ErrRecordNotFound indicates that no row matched the identifier
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnsupportedDriver indicates an unknown driver name in configuration
	ErrUnsupportedDriver = errors.New("unsupported endpoint driver")
)
