package allocator

import "errors"

var (
	// ErrInvalidRequest is returned before any search runs for
	// non-positive party sizes or durations and malformed times
	ErrInvalidRequest = errors.New("allocator: invalid request")

	// ErrRoomNotFound is returned when the preferred room does not exist
	// or is not active
	ErrRoomNotFound = errors.New("allocator: room not found")

	// ErrBlocked is returned when the requested scope is closed by an
	// availability block; distinct from a plain no-capacity outcome
	ErrBlocked = errors.New("allocator: scope is blocked")

	// ErrClosed is returned when no queried room is open at the
	// requested date and time
	ErrClosed = errors.New("allocator: room is not open at the requested time")
)
