package create_booking

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate is returned when the booking date lies in the past
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrRoomNotFound is returned when the preferred room does not exist
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomClosed is returned when no queried room is open at the
	// requested date and time
	ErrRoomClosed = errors.New("create_booking: room is closed at the requested time")

	// ErrTimeBlocked is returned when an availability block closes the
	// requested scope
	ErrTimeBlocked = errors.New("create_booking: requested time is blocked")

	// ErrNoCapacity is returned when no table combination covers the
	// party size at the requested time
	ErrNoCapacity = errors.New("create_booking: no tables available for this party size")

	// ErrInternal is returned for internal use case failures
	ErrInternal = errors.New("create_booking: internal error")
)
