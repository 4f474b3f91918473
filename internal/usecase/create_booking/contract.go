package create_booking

import (
	"context"
	"time"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/engine/allocator"
)

// CatalogRepository reads rooms, tables, layouts and opening hours.
type CatalogRepository interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	ListTables(ctx context.Context) ([]domain.Table, error)
	ListLayouts(ctx context.Context) ([]*domain.TableLayout, error)
	GetRoomHours(ctx context.Context) (map[int64]domain.RoomHours, error)
}

// BookingRepository persists bookings and reads the date's confirmed
// bookings. Inside a transaction the read locks the rows (FOR UPDATE).
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// BlockRepository reads active availability blocks.
type BlockRepository interface {
	ListActive(ctx context.Context) ([]domain.AvailabilityBlock, error)
}

// TableAllocator runs the allocation pipeline over a loaded snapshot.
type TableAllocator interface {
	Allocate(snap *allocator.Snapshot, req *allocator.Request) (*allocator.Result, error)
}

// TransactionManager runs a function inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
