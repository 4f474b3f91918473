package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRoomNotFound is returned when the room does not exist
	ErrRoomNotFound = errors.New("room not found")

	// ErrCannotCancel is returned when the booking is not cancellable
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service failures
	ErrInternal = errors.New("service: internal error")
)
