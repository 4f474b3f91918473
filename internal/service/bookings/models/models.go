package models

import (
	"errors"
	"time"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown status string
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// CancelBookingRequest asks to cancel a booking with a reason.
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// GetRoomBookingsRequest lists a room's bookings with optional filters.
type GetRoomBookingsRequest struct {
	RoomID           int64      `json:"roomId"`
	Date             *time.Time `json:"date,omitempty"`
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter converts the request into the repository filter.
func (r *GetRoomBookingsRequest) ToDomainFilter() (domain.RoomBookingsFilter, error) {
	filter := domain.RoomBookingsFilter{
		RoomID:           r.RoomID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse is the outward booking representation.
type BookingResponse struct {
	ID           int64  `json:"id"`
	RoomID       int64  `json:"roomId"`
	CustomerName string `json:"customerName"`
	BookingDate  string `json:"bookingDate"` // "2025-10-15"
	StartTime    string `json:"startTime"`   // "18:00"
	// DurationMinutes of -1 means the booking runs until the room closes.
	DurationMinutes int     `json:"durationMinutes"`
	PartySize       int     `json:"partySize"`
	Status          string  `json:"status"`
	TableIDs        []int64 `json:"tableIds"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse is a list of bookings.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking converts a domain booking into the DTO.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		RoomID:             b.RoomID,
		CustomerName:       b.CustomerName,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		PartySize:          b.PartySize,
		Status:             string(b.Status),
		TableIDs:           b.TableIDs,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if resp.TableIDs == nil {
		resp.TableIDs = []int64{}
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList converts a list of domain bookings into the DTO.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus validates and converts a status string.
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusConfirmed, domain.StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
