package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/castlepub/reservation-system-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/castlepub/reservation-system-sub000/internal/infra/storage/catalog"
	"github.com/castlepub/reservation-system-sub000/internal/service/bookings/models"
)

// Service covers the read and cancel flows around bookings. Creation goes
// through the create_booking use case; everything here is simple enough
// not to need one.
type Service struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService creates a bookings service.
func NewService(
	bookingRepository BookingRepository,
	catalogRepository CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepository,
		catalogRepo: catalogRepository,
		logger:      logger,
	}
}

// GetByID fetches one booking.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetRoomBookings lists a room's bookings with optional date and status
// filters. Cancelled bookings are hidden unless asked for.
func (s *Service) GetRoomBookings(ctx context.Context, req *models.GetRoomBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRoomBookings: room=%d, date=%v, status=%v", req.RoomID, req.Date, req.Status)

	if _, err := s.catalogRepo.GetRoom(ctx, req.RoomID); err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			s.logger.Warn("GetRoomBookings: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoomBookings: failed to resolve room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomBookings - catalog error: %v", ErrInternal, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetRoomBookings: invalid filter for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByRoomWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRoomBookings: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRoomBookings: fetched %d bookings for room=%d", len(bookings), req.RoomID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel cancels a confirmed booking, releasing its tables for the slot.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled booking id=%d", bookingID)
	return nil
}
