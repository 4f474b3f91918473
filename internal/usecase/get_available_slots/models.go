package get_available_slots

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// Request asks for a room's bookable slots on one date.
type Request struct {
	RoomID int64
	Date   time.Time
	// PartySize the slots must seat.
	PartySize int
	// DurationMinutes per slot. Zero defaults to
	// domain.DefaultBookingDurationMinutes.
	DurationMinutes int
	// StepMinutes between candidate starts. Zero defaults to
	// domain.DefaultSlotStepMinutes.
	StepMinutes int
	// PublicOnly restricts the search to publicly bookable tables.
	PublicOnly bool
}

// Slot is one bookable start time with the winning combination.
type Slot struct {
	StartTime     types.TimeString
	TableIDs      []int64
	TotalCapacity int
}

// Response lists the date's bookable slots in start-time order.
// Slots is empty when the room is closed, fully booked or blocked.
type Response struct {
	RoomID int64
	Date   time.Time
	Slots  []Slot
}
