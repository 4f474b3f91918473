package get_available_slots

import (
	"context"
	"fmt"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/engine/allocator"
)

// UseCase builds a room's availability calendar for one date by
// re-running the allocation pipeline per candidate slot. Brute force on
// purpose: the snapshot is loaded once and each slot is an in-memory
// evaluation over it.
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	allocator    TableAllocator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	tableAllocator TableAllocator,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		allocator:    tableAllocator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute lists the room's bookable slots for the date.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%d, date=%s, party=%d",
		req.RoomID, req.Date.Format(domain.DateFormat), req.PartySize)

	// 1. Apply defaults, then validate.
	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultBookingDurationMinutes
	}
	if req.StepMinutes == 0 {
		req.StepMinutes = domain.DefaultSlotStepMinutes
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Load one snapshot for all slot evaluations.
	snap, err := loadSnapshot(ctx, uc.catalogRepo, uc.bookingRepo, uc.blockRepo, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load snapshot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. The room must exist and be active.
	if !roomExists(snap.Rooms, req.RoomID) {
		uc.logger.Warn("GetAvailableSlots: room id=%d not found", req.RoomID)
		return nil, ErrRoomNotFound
	}

	resp := &Response{
		RoomID: req.RoomID,
		Date:   req.Date,
		Slots:  make([]Slot, 0),
	}

	// 4. A closed day has no slots; that is a valid empty calendar.
	hours, ok := snap.Hours[req.RoomID]
	if !ok {
		return resp, nil
	}
	day := hours.ForDate(req.Date)

	// 5. Evaluate each candidate start through the full pipeline. Blocked
	// or closed slots are simply not listed.
	now := uc.timeProvider.Now()
	for _, start := range enumerateStarts(day, req.DurationMinutes, req.StepMinutes) {
		result, err := uc.allocator.Allocate(snap, &allocator.Request{
			Date:            req.Date,
			StartTime:       start,
			DurationMinutes: req.DurationMinutes,
			PartySize:       req.PartySize,
			RoomID:          &req.RoomID,
			PublicOnly:      req.PublicOnly,
			Now:             now,
		})
		if err != nil || result == nil {
			continue
		}

		slot := Slot{
			StartTime:     start,
			TotalCapacity: result.TotalCapacity,
			TableIDs:      make([]int64, 0, len(result.Tables)),
		}
		for _, t := range result.Tables {
			slot.TableIDs = append(slot.TableIDs, t.ID)
		}
		resp.Slots = append(resp.Slots, slot)
	}

	uc.logger.Info("GetAvailableSlots: room=%d, date=%s: %d slots",
		req.RoomID, req.Date.Format(domain.DateFormat), len(resp.Slots))

	return resp, nil
}

func roomExists(rooms []domain.Room, id int64) bool {
	for _, r := range rooms {
		if r.ID == id && r.Active {
			return true
		}
	}
	return false
}
