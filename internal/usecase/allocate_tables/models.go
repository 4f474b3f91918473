package allocate_tables

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// Request describes one table-finding question.
type Request struct {
	Date      time.Time        // booking date (no time part)
	StartTime types.TimeString // slot start, e.g. "18:00"
	// DurationMinutes may be domain.DurationUntilClose to run until the
	// room closes. Zero defaults to domain.DefaultBookingDurationMinutes.
	DurationMinutes int
	PartySize       int
	RoomID          *int64 // preferred room; nil searches all rooms
	// PublicOnly restricts the search to publicly bookable tables.
	PublicOnly bool
	// ExcludeBookingID ignores an existing booking's holds (edit flow).
	ExcludeBookingID *int64
}

// AllocatedTable is one table of the winning combination.
type AllocatedTable struct {
	ID       int64
	RoomID   int64
	Name     string
	Capacity int
}

// Response carries the winning combination, or Available=false when no
// combination covers the party size.
type Response struct {
	Available bool

	// RoomID is nil for a cross-room combination.
	RoomID        *int64
	RoomName      *string
	Tables        []AllocatedTable
	TotalCapacity int
	Score         float64
}
