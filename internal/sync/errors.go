package sync

import "errors"

// Error classes recorded in a cycle Result. Every recorded error wraps one of them.
var (
	// ErrEndpointUnreachable indicates that connect or probe of an endpoint failed
	ErrEndpointUnreachable = errors.New("endpoint unreachable")

	// ErrTableQuery indicates that selecting rows of a table failed
	ErrTableQuery = errors.New("table query failed")

	// ErrRowOperation indicates that an upsert or flag update of one row failed
	ErrRowOperation = errors.New("row operation failed")

	// ErrCursorPersist indicates that reading or writing a table cursor failed
	ErrCursorPersist = errors.New("cursor persist failed")

	// ErrCycleAborted indicates that the cycle ended early (deadline or panic)
	ErrCycleAborted = errors.New("sync cycle aborted")
)
