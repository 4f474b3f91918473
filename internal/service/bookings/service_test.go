package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	bookingRepo "github.com/castlepub/reservation-system-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/castlepub/reservation-system-sub000/internal/infra/storage/catalog"
	"github.com/castlepub/reservation-system-sub000/internal/service/bookings/models"
	"github.com/castlepub/reservation-system-sub000/pkg/ptr"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	byID      map[int64]*domain.Booking
	listed    []*domain.Booking
	gotFilter *domain.RoomBookingsFilter
	cancelled map[int64]string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByRoomWithFilter(_ context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = &filter
	return f.listed, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if f.cancelled == nil {
		f.cancelled = make(map[int64]string)
	}
	f.cancelled[id] = reason
	return nil
}

type fakeCatalogRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeCatalogRepo) GetRoom(_ context.Context, id int64) (*domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, catalogRepo.ErrRoomNotFound
	}
	return r, nil
}

func confirmedBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		RoomID:          1,
		CustomerName:    "Sam",
		BookingDate:     time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		StartTime:       "18:00",
		DurationMinutes: 120,
		PartySize:       4,
		Status:          domain.StatusConfirmed,
		TableIDs:        []int64{11},
	}
}

func newTestService(bookings *fakeBookingRepo) *Service {
	catalog := &fakeCatalogRepo{rooms: map[int64]*domain.Room{
		1: {ID: 1, Name: "Garden", Active: true},
	}}
	return NewService(bookings, catalog, testLogger{})
}

func TestGetByID(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{byID: map[int64]*domain.Booking{
		5: confirmedBooking(5),
	}})

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2025-06-06", resp.BookingDate)
	assert.Equal(t, "18:00", resp.StartTime)
	assert.Equal(t, []int64{11}, resp.TableIDs)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetRoomBookings(t *testing.T) {
	repo := &fakeBookingRepo{
		byID:   map[int64]*domain.Booking{},
		listed: []*domain.Booking{confirmedBooking(1), confirmedBooking(2)},
	}
	svc := newTestService(repo)

	date := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetRoomBookings(context.Background(), &models.GetRoomBookingsRequest{
		RoomID: 1,
		Date:   &date,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	require.NotNil(t, repo.gotFilter)
	assert.Equal(t, int64(1), repo.gotFilter.RoomID)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotFilter.Status)

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.GetRoomBookings(context.Background(), &models.GetRoomBookingsRequest{RoomID: 42})
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("bad status filter", func(t *testing.T) {
		_, err := svc.GetRoomBookings(context.Background(), &models.GetRoomBookingsRequest{
			RoomID: 1,
			Status: ptr.Ptr("pending"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		5: confirmedBooking(5),
	}}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{CancellationReason: "guest called"})
	require.NoError(t, err)
	assert.Equal(t, "guest called", repo.cancelled[5])

	t.Run("already cancelled", func(t *testing.T) {
		b := confirmedBooking(6)
		b.Status = domain.StatusCancelled
		repo.byID[6] = b

		err := svc.Cancel(context.Background(), 6, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("missing booking", func(t *testing.T) {
		err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
