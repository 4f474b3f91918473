package create_booking

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// Request is the booking creation request.
type Request struct {
	CustomerName string
	Date         time.Time        // booking date (no time part)
	StartTime    types.TimeString // e.g. "18:00"
	// DurationMinutes may be domain.DurationUntilClose to book until the
	// room closes. Zero defaults to domain.DefaultBookingDurationMinutes.
	DurationMinutes int
	PartySize       int
	RoomID          *int64 // preferred room; nil lets the engine choose
	// PublicOnly restricts seating to publicly bookable tables. Set for
	// guest-facing requests; staff bookings may use any table.
	PublicOnly bool
	Notes      *string
}

// BookedTable is one table held by the created booking.
type BookedTable struct {
	ID       int64
	Name     string
	Capacity int
}

// Response is the created booking.
type Response struct {
	ID              int64
	RoomID          int64
	RoomName        string
	CustomerName    string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int
	Status          string
	Tables          []BookedTable
	TotalCapacity   int
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
