package allocate_tables

import (
	"context"
	"fmt"
	"time"

	"github.com/castlepub/reservation-system-sub000/internal/engine/allocator"
)

// loadSnapshot gathers the read set an allocation decision is computed
// over. Inside a transaction the booking read locks the date's rows.
func loadSnapshot(
	ctx context.Context,
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	date time.Time,
) (*allocator.Snapshot, error) {
	rooms, err := catalogRepo.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %v", err)
	}

	tables, err := catalogRepo.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tables: %v", err)
	}

	layouts, err := catalogRepo.ListLayouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load layouts: %v", err)
	}

	hours, err := catalogRepo.GetRoomHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("load room hours: %v", err)
	}

	bookings, err := bookingRepo.GetConfirmedByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %v", err)
	}

	blocks, err := blockRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %v", err)
	}

	return &allocator.Snapshot{
		Rooms:    rooms,
		Tables:   tables,
		Layouts:  layouts,
		Bookings: bookings,
		Blocks:   blocks,
		Hours:    hours,
	}, nil
}
