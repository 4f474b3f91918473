package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/engine/allocator"
	"github.com/castlepub/reservation-system-sub000/pkg/ptr"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeCatalogRepo struct {
	rooms   []domain.Room
	tables  []domain.Table
	layouts []*domain.TableLayout
	hours   map[int64]domain.RoomHours
}

func (f *fakeCatalogRepo) ListRooms(context.Context) ([]domain.Room, error)   { return f.rooms, nil }
func (f *fakeCatalogRepo) ListTables(context.Context) ([]domain.Table, error) { return f.tables, nil }
func (f *fakeCatalogRepo) ListLayouts(context.Context) ([]*domain.TableLayout, error) {
	return f.layouts, nil
}
func (f *fakeCatalogRepo) GetRoomHours(context.Context) (map[int64]domain.RoomHours, error) {
	return f.hours, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetConfirmedByDate(context.Context, time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeBlockRepo struct {
	blocks []domain.AvailabilityBlock
}

func (f *fakeBlockRepo) ListActive(context.Context) ([]domain.AvailabilityBlock, error) {
	return f.blocks, nil
}

var (
	testDate = time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
)

func openAllWeek(roomID int64, open, close string) domain.RoomHours {
	h := domain.RoomHours{RoomID: roomID}
	for wd := 0; wd < 7; wd++ {
		h.Days[wd] = domain.DayHours{
			Weekday:   time.Weekday(wd),
			OpenTime:  ptr.Ptr(types.TimeString(open)),
			CloseTime: ptr.Ptr(types.TimeString(close)),
		}
	}
	return h
}

func newTestUseCase(catalog *fakeCatalogRepo, bookings *fakeBookingRepo, blocks *fakeBlockRepo) *UseCase {
	uc := NewUseCase(catalog, bookings, blocks, allocator.New(testLogger{}), testLogger{})
	uc.timeProvider = &fakeClock{now: testNow}
	return uc
}

func smallRoomCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		rooms: []domain.Room{{ID: 1, Name: "Snug", Active: true}},
		tables: []domain.Table{
			{ID: 11, RoomID: 1, Name: "S1", Capacity: 4, Combinable: false, Active: true, PublicBookable: true},
		},
		hours: map[int64]domain.RoomHours{1: openAllWeek(1, "18:00", "21:00")},
	}
}

func TestExecuteListsOpenSlots(t *testing.T) {
	uc := newTestUseCase(smallRoomCatalog(), &fakeBookingRepo{}, &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:          1,
		Date:            testDate,
		PartySize:       4,
		DurationMinutes: 120,
		StepMinutes:     30,
	})
	require.NoError(t, err)

	// 18:00-21:00 window, 120-minute slots: the last start fitting before
	// close is 19:00.
	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
		assert.Equal(t, []int64{11}, s.TableIDs)
		assert.Equal(t, 4, s.TotalCapacity)
	}
	assert.Equal(t, []types.TimeString{"18:00", "18:30", "19:00"}, starts)
}

func TestExecuteBookedSlotsDropOut(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{{
		ID:              1,
		RoomID:          1,
		BookingDate:     testDate,
		StartTime:       "18:00",
		DurationMinutes: 60,
		PartySize:       4,
		Status:          domain.StatusConfirmed,
		TableIDs:        []int64{11},
	}}}
	uc := newTestUseCase(smallRoomCatalog(), bookings, &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:          1,
		Date:            testDate,
		PartySize:       4,
		DurationMinutes: 120,
		StepMinutes:     30,
	})
	require.NoError(t, err)

	// 18:00 and 18:30 collide with the 18:00-19:00 booking; 19:00 touches
	// it and stays bookable.
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("19:00"), resp.Slots[0].StartTime)
}

func TestExecuteClosedDayIsEmptyCalendar(t *testing.T) {
	catalog := smallRoomCatalog()
	closed := domain.RoomHours{RoomID: 1}
	for wd := 0; wd < 7; wd++ {
		closed.Days[wd] = domain.DayHours{Weekday: time.Weekday(wd), Closed: true}
	}
	catalog.hours[1] = closed
	uc := newTestUseCase(catalog, &fakeBookingRepo{}, &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:          1,
		Date:            testDate,
		PartySize:       4,
		DurationMinutes: 120,
		StepMinutes:     30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteBlockedDayIsEmptyCalendar(t *testing.T) {
	blocks := &fakeBlockRepo{blocks: []domain.AvailabilityBlock{{
		ID:       1,
		Scope:    domain.ScopeRoom,
		RoomID:   ptr.Ptr(int64(1)),
		Type:     domain.BlockBlackout,
		StartsAt: ptr.Ptr(time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)),
		EndsAt:   ptr.Ptr(time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)),
		Active:   true,
	}}}
	uc := newTestUseCase(smallRoomCatalog(), &fakeBookingRepo{}, blocks)

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:          1,
		Date:            testDate,
		PartySize:       4,
		DurationMinutes: 120,
		StepMinutes:     30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteRoomNotFound(t *testing.T) {
	uc := newTestUseCase(smallRoomCatalog(), &fakeBookingRepo{}, &fakeBlockRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		RoomID:          99,
		Date:            testDate,
		PartySize:       4,
		DurationMinutes: 120,
		StepMinutes:     30,
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(smallRoomCatalog(), &fakeBookingRepo{}, &fakeBlockRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		RoomID:          1,
		Date:            testDate,
		PartySize:       0,
		DurationMinutes: 120,
		StepMinutes:     30,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEnumerateStartsOvernightWindow(t *testing.T) {
	day := domain.DayHours{
		Weekday:   time.Friday,
		OpenTime:  ptr.Ptr(types.TimeString("22:00")),
		CloseTime: ptr.Ptr(types.TimeString("02:00")),
	}

	starts := enumerateStarts(day, 120, 60)
	assert.Equal(t, []types.TimeString{"22:00", "23:00", "00:00"}, starts)
}
