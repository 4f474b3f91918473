package allocate_tables

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("allocate_tables: invalid input data")

	// ErrRoomNotFound is returned when the preferred room does not exist
	ErrRoomNotFound = errors.New("allocate_tables: room not found")

	// ErrRoomClosed is returned when no queried room is open at the
	// requested date and time
	ErrRoomClosed = errors.New("allocate_tables: room is closed at the requested time")

	// ErrTimeBlocked is returned when an availability block closes the
	// requested scope
	ErrTimeBlocked = errors.New("allocate_tables: requested time is blocked")

	// ErrInternal is returned for internal use case failures
	ErrInternal = errors.New("allocate_tables: internal error")
)
