package allocate_tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/engine/allocator"
)

// UseCase finds the best table combination for a party without creating
// a booking. This is the dry-run behind availability previews and the
// staff "find a table" tool.
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

// Execute runs the allocation pipeline over a fresh snapshot.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AllocateTables: date=%s, time=%s, party=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Apply the default duration, then validate.
	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultBookingDurationMinutes
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AllocateTables: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the decision snapshot.
	snap, err := loadSnapshot(ctx, uc.catalogRepo, uc.bookingRepo, uc.blockRepo, req.Date)
	if err != nil {
		uc.logger.Error("AllocateTables: failed to load snapshot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Run the allocator.
	result, err := uc.allocator.Allocate(snap, &allocator.Request{
		Date:             req.Date,
		StartTime:        req.StartTime,
		DurationMinutes:  req.DurationMinutes,
		PartySize:        req.PartySize,
		RoomID:           req.RoomID,
		PublicOnly:       req.PublicOnly,
		ExcludeBookingID: req.ExcludeBookingID,
		Now:              uc.timeProvider.Now(),
	})
	if err != nil {
		return nil, uc.mapAllocatorError(err)
	}

	// 4. No capacity is the expected "unavailable" outcome, not a fault.
	if result == nil {
		uc.logger.Info("AllocateTables: no combination for party of %d", req.PartySize)
		return &Response{Available: false}, nil
	}

	return buildResponse(result), nil
}

func (uc *UseCase) mapAllocatorError(err error) error {
	switch {
	case errors.Is(err, allocator.ErrInvalidRequest):
		uc.logger.Warn("AllocateTables: rejected by allocator: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, allocator.ErrRoomNotFound):
		uc.logger.Warn("AllocateTables: room not found")
		return ErrRoomNotFound
	case errors.Is(err, allocator.ErrBlocked):
		uc.logger.Info("AllocateTables: requested time is blocked")
		return ErrTimeBlocked
	case errors.Is(err, allocator.ErrClosed):
		uc.logger.Info("AllocateTables: room closed at requested time")
		return ErrRoomClosed
	default:
		uc.logger.Error("AllocateTables: allocation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func buildResponse(result *allocator.Result) *Response {
	resp := &Response{
		Available:     true,
		TotalCapacity: result.TotalCapacity,
		Score:         result.Score,
		Tables:        make([]AllocatedTable, 0, len(result.Tables)),
	}
	if result.Room != nil {
		resp.RoomID = &result.Room.ID
		resp.RoomName = &result.Room.Name
	}
	for _, t := range result.Tables {
		resp.Tables = append(resp.Tables, AllocatedTable{
			ID:       t.ID,
			RoomID:   t.RoomID,
			Name:     t.Name,
			Capacity: t.Capacity,
		})
	}
	return resp
}
