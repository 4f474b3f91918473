package get_available_slots

import (
	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// enumerateStarts lists the candidate slot starts for a day's schedule in
// stepMinutes increments. Only starts whose full duration fits before the
// closing time are produced; an overnight close rolls to the next day.
// Returns nil when the room does not open that day.
func enumerateStarts(day domain.DayHours, durationMinutes, stepMinutes int) []types.TimeString {
	if !day.IsOpen() {
		return nil
	}

	openMin, err := day.OpenTime.Minutes()
	if err != nil {
		return nil
	}
	closeMin, err := day.CloseTime.Minutes()
	if err != nil {
		return nil
	}
	if closeMin <= openMin {
		closeMin += 24 * 60
	}

	starts := make([]types.TimeString, 0)
	for startMin := openMin; startMin+durationMinutes <= closeMin; startMin += stepMinutes {
		ts, err := types.NewTimeStringFromMinutes(startMin % (24 * 60))
		if err != nil {
			continue
		}
		starts = append(starts, ts)
	}
	return starts
}
