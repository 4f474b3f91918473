package find_tables

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	allocateTables "github.com/castlepub/reservation-system-sub000/internal/usecase/allocate_tables"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// FindTablesRequest HTTP request model
type FindTablesRequest struct {
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "18:00"
	// DurationMinutes of -1 searches until the room closes; 0 applies the
	// default duration.
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	PartySize       int    `json:"partySize"`
	RoomID          *int64 `json:"roomId,omitempty"`
	PublicOnly      bool   `json:"publicOnly,omitempty"`
	// ExcludeBookingID ignores an existing booking's tables (edit flow).
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`
}

// TableModel is one table of the suggested combination.
type TableModel struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"roomId"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// FindTablesResponse HTTP response model. RoomID is null for a
// combination pooled across rooms.
type FindTablesResponse struct {
	Available     bool         `json:"available"`
	RoomID        *int64       `json:"roomId,omitempty"`
	RoomName      *string      `json:"roomName,omitempty"`
	Tables        []TableModel `json:"tables"`
	TotalCapacity int          `json:"totalCapacity"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *FindTablesRequest) ToUseCaseRequest() (*allocateTables.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &allocateTables.Request{
		Date:             bookingDate,
		StartTime:        startTime,
		DurationMinutes:  r.DurationMinutes,
		PartySize:        r.PartySize,
		RoomID:           r.RoomID,
		PublicOnly:       r.PublicOnly,
		ExcludeBookingID: r.ExcludeBookingID,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *allocateTables.Response) *FindTablesResponse {
	out := &FindTablesResponse{
		Available:     resp.Available,
		RoomID:        resp.RoomID,
		RoomName:      resp.RoomName,
		TotalCapacity: resp.TotalCapacity,
		Tables:        make([]TableModel, 0, len(resp.Tables)),
	}
	for _, t := range resp.Tables {
		out.Tables = append(out.Tables, TableModel{
			ID:       t.ID,
			RoomID:   t.RoomID,
			Name:     t.Name,
			Capacity: t.Capacity,
		})
	}
	return out
}
