package get_available_slots

import (
	"github.com/castlepub/reservation-system-sub000/internal/domain"
	getAvailableSlots "github.com/castlepub/reservation-system-sub000/internal/usecase/get_available_slots"
)

// SlotModel is one bookable start time.
type SlotModel struct {
	StartTime     string  `json:"startTime"` // "18:00"
	TableIDs      []int64 `json:"tableIds"`
	TotalCapacity int     `json:"totalCapacity"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	RoomID int64       `json:"roomId"`
	Date   string      `json:"date"` // "2025-10-15"
	Slots  []SlotModel `json:"slots"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		RoomID: resp.RoomID,
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  make([]SlotModel, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotModel{
			StartTime:     s.StartTime.String(),
			TableIDs:      s.TableIDs,
			TotalCapacity: s.TotalCapacity,
		})
	}
	return out
}
