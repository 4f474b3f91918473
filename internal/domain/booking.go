package domain

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a table reservation. A booking owns the set of
// physical tables assigned to it through TableIDs; the tables always
// belong to the booking's room.
type Booking struct {
	ID           int64
	RoomID       int64
	CustomerName string
	BookingDate  time.Time
	StartTime    types.TimeString
	// DurationMinutes is the booked length of stay.
	// DurationUntilClose means the booking runs until the room closes.
	DurationMinutes int
	PartySize       int
	Status          BookingStatus

	// Assigned physical tables (many-to-many join rows).
	TableIDs []int64

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking holds its tables.
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// RoomBookingsFilter is the filter for listing a room's bookings.
type RoomBookingsFilter struct {
	RoomID           int64
	Date             *time.Time     // nil = no date restriction
	Status           *BookingStatus // nil = per IncludeCancelled
	IncludeCancelled bool
}

// TableCombination is a set of tables chosen to seat one party.
type TableCombination struct {
	RoomID int64
	Tables []Table
}

// TotalCapacity returns the summed seating capacity of the combination.
func (c *TableCombination) TotalCapacity() int {
	total := 0
	for _, t := range c.Tables {
		total += t.Capacity
	}
	return total
}

// TableIDs returns the identifiers of the combined tables in order.
func (c *TableCombination) TableIDs() []int64 {
	ids := make([]int64, len(c.Tables))
	for i, t := range c.Tables {
		ids[i] = t.ID
	}
	return ids
}
