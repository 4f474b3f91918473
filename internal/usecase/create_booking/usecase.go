package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/engine/allocator"
)

// UseCase creates a booking: it allocates tables and persists the booking
// with its table assignments atomically.
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	allocator    TableAllocator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	tableAllocator TableAllocator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		allocator:    tableAllocator,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute allocates tables and creates the booking.
//
// Allocation and persistence run inside one serializable transaction with
// the date's booking rows locked: two concurrent requests for the same
// tables serialize, so both can never pass the conflict check and
// double-book. Treating the race as acceptable is not an option here.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%q, date=%s, time=%s, party=%d",
		req.CustomerName, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Apply the default duration, then validate.
	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultBookingDurationMinutes
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Reject dates in the past against the current clock.
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	var (
		created *domain.Booking
		room    *domain.Room
		tables  []domain.Table
	)

	// 3. Allocate and persist in a serializable transaction.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Load the snapshot; the booking read locks the date's rows.
		snap, err := loadSnapshot(txCtx, uc.catalogRepo, uc.bookingRepo, uc.blockRepo, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load snapshot: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 3.2. Run the allocator.
		result, err := uc.allocator.Allocate(snap, &allocator.Request{
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			PartySize:       req.PartySize,
			RoomID:          req.RoomID,
			PublicOnly:      req.PublicOnly,
			Now:             now,
		})
		if err != nil {
			return uc.mapAllocatorError(err)
		}
		if result == nil {
			uc.logger.Info("CreateBooking: no combination for party of %d", req.PartySize)
			return ErrNoCapacity
		}

		// 3.3. A booking holds tables in exactly one room. A cross-room
		// pool result cannot be persisted as a single booking; staff split
		// such parties into per-room bookings by hand.
		if result.Room == nil {
			uc.logger.Info("CreateBooking: only a cross-room combination seats party of %d, rejecting",
				req.PartySize)
			return ErrNoCapacity
		}

		// 3.4. Persist the booking with its assignments.
		booking := &domain.Booking{
			RoomID:          result.Room.ID,
			CustomerName:    req.CustomerName,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			PartySize:       req.PartySize,
			Status:          domain.StatusConfirmed,
			Notes:           req.Notes,
		}
		for _, t := range result.Tables {
			booking.TableIDs = append(booking.TableIDs, t.ID)
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		room = result.Room
		tables = result.Tables
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, room=%d, tables=%d",
		created.ID, room.ID, len(tables))

	return buildResponse(created, room, tables), nil
}

func (uc *UseCase) mapAllocatorError(err error) error {
	switch {
	case errors.Is(err, allocator.ErrInvalidRequest):
		uc.logger.Warn("CreateBooking: rejected by allocator: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, allocator.ErrRoomNotFound):
		uc.logger.Warn("CreateBooking: room not found")
		return ErrRoomNotFound
	case errors.Is(err, allocator.ErrBlocked):
		uc.logger.Info("CreateBooking: requested time is blocked")
		return ErrTimeBlocked
	case errors.Is(err, allocator.ErrClosed):
		uc.logger.Info("CreateBooking: room closed at requested time")
		return ErrRoomClosed
	default:
		uc.logger.Error("CreateBooking: allocation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func buildResponse(booking *domain.Booking, room *domain.Room, tables []domain.Table) *Response {
	resp := &Response{
		ID:              booking.ID,
		RoomID:          room.ID,
		RoomName:        room.Name,
		CustomerName:    booking.CustomerName,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.DurationMinutes,
		PartySize:       booking.PartySize,
		Status:          string(booking.Status),
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
		Tables:          make([]BookedTable, 0, len(tables)),
	}
	for _, t := range tables {
		resp.Tables = append(resp.Tables, BookedTable{ID: t.ID, Name: t.Name, Capacity: t.Capacity})
		resp.TotalCapacity += t.Capacity
	}
	return resp
}
