package bookings

import (
	"context"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
)

// BookingRepository is the persistence surface the service needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRoomWithFilter(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// CatalogRepository resolves room existence for listings.
type CatalogRepository interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// Logger is the logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
