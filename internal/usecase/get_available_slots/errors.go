package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrRoomNotFound is returned when the room does not exist or is
	// not active
	ErrRoomNotFound = errors.New("get_available_slots: room not found")

	// ErrInternal is returned for internal use case failures
	ErrInternal = errors.New("get_available_slots: internal error")
)
