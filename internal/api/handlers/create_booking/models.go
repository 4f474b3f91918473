package create_booking

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	createBooking "github.com/castlepub/reservation-system-sub000/internal/usecase/create_booking"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName string `json:"customerName"`
	BookingDate  string `json:"bookingDate"` // "2025-10-15"
	StartTime    string `json:"startTime"`   // "18:00"
	// DurationMinutes of -1 books until the room closes; 0 applies the
	// default duration.
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	PartySize int    `json:"partySize"`
	RoomID    *int64 `json:"roomId,omitempty"`
	// PublicOnly seats the party on publicly bookable tables only, as a
	// guest-facing channel would.
	PublicOnly bool    `json:"publicOnly,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// TableModel is one assigned table in the response.
type TableModel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64        `json:"id"`
	RoomID          int64        `json:"roomId"`
	RoomName        string       `json:"roomName"`
	CustomerName    string       `json:"customerName"`
	BookingDate     string       `json:"bookingDate"`
	StartTime       string       `json:"startTime"`
	DurationMinutes int          `json:"durationMinutes"`
	PartySize       int          `json:"partySize"`
	Status          string       `json:"status"`
	Tables          []TableModel `json:"tables"`
	TotalCapacity   int          `json:"totalCapacity"`
	Notes           *string      `json:"notes,omitempty"`
	CreatedAt       string       `json:"createdAt"`
	UpdatedAt       string       `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerName:    r.CustomerName,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		PartySize:       r.PartySize,
		RoomID:          r.RoomID,
		PublicOnly:      r.PublicOnly,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:              resp.ID,
		RoomID:          resp.RoomID,
		RoomName:        resp.RoomName,
		CustomerName:    resp.CustomerName,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		PartySize:       resp.PartySize,
		Status:          resp.Status,
		TotalCapacity:   resp.TotalCapacity,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
		Tables:          make([]TableModel, 0, len(resp.Tables)),
	}
	for _, t := range resp.Tables {
		out.Tables = append(out.Tables, TableModel{ID: t.ID, Name: t.Name, Capacity: t.Capacity})
	}
	return out
}
