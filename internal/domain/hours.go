package domain

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// DayHours is a room's opening schedule for one weekday.
// A close time at or before the open time means the room closes past
// midnight on the following day.
type DayHours struct {
	Weekday   time.Weekday
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
	Closed    bool
}

// IsOpen reports whether the room opens at all on this weekday.
func (d *DayHours) IsOpen() bool {
	return !d.Closed && d.OpenTime != nil && d.CloseTime != nil
}

// RoomHours is a room's weekly opening schedule.
type RoomHours struct {
	RoomID int64
	Days   [7]DayHours // indexed by time.Weekday
}

// ForDate returns the schedule applying to the given calendar date.
func (h *RoomHours) ForDate(date time.Time) DayHours {
	return h.Days[int(date.Weekday())]
}
