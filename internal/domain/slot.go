package domain

import "github.com/castlepub/reservation-system-sub000/pkg/types"

// AvailableSlot is one bookable start time for a requested party size,
// together with the winning table combination for that time.
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	TotalCapacity   int
	TableIDs        []int64
}

// Excess returns how many seats the slot's combination wastes for the
// given party size.
func (s *AvailableSlot) Excess(partySize int) int {
	return s.TotalCapacity - partySize
}
