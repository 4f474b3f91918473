package create_booking

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

// fakeTxManager runs the function directly; transactional behavior is the
// database's job and is not under test here.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

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
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) GetConfirmedByDate(context.Context, time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
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

func defaultCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		rooms: []domain.Room{{ID: 1, Name: "Garden", Active: true}},
		tables: []domain.Table{
			{ID: 11, RoomID: 1, Name: "G1", Capacity: 2, Combinable: true, Active: true, PublicBookable: true},
			{ID: 12, RoomID: 1, Name: "G2", Capacity: 4, Combinable: true, Active: true, PublicBookable: true},
		},
		layouts: []*domain.TableLayout{
			{TableID: 11, PosX: 0, PosY: 0, Width: 80, Height: 80},
			{TableID: 12, PosX: 100, PosY: 0, Width: 80, Height: 80},
		},
		hours: map[int64]domain.RoomHours{1: openAllWeek(1, "12:00", "23:00")},
	}
}

func newTestUseCase(catalog *fakeCatalogRepo, bookings *fakeBookingRepo, blocks *fakeBlockRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(catalog, bookings, blocks, allocator.New(testLogger{}), tx, testLogger{})
	uc.timeProvider = &fakeClock{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		CustomerName:    "Jamie Oliver",
		Date:            testDate,
		StartTime:       "18:00",
		DurationMinutes: 120,
		PartySize:       6,
	}
}

func TestExecuteCreatesBooking(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	tx := &fakeTxManager{}
	uc := newTestUseCase(defaultCatalog(), bookingRepo, &fakeBlockRepo{}, tx)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls, "allocation and persistence run in one transaction")

	require.NotNil(t, bookingRepo.created)
	assert.Equal(t, int64(1), bookingRepo.created.RoomID)
	assert.Equal(t, domain.StatusConfirmed, bookingRepo.created.Status)
	assert.ElementsMatch(t, []int64{11, 12}, bookingRepo.created.TableIDs)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Garden", resp.RoomName)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 6, resp.TotalCapacity)
	assert.Len(t, resp.Tables, 2)
}

func TestExecuteNoCapacity(t *testing.T) {
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{{
		ID:              50,
		RoomID:          1,
		BookingDate:     testDate,
		StartTime:       "17:00",
		DurationMinutes: 180,
		PartySize:       6,
		Status:          domain.StatusConfirmed,
		TableIDs:        []int64{11, 12},
	}}}
	uc := newTestUseCase(defaultCatalog(), bookingRepo, &fakeBlockRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoCapacity)
	assert.Nil(t, bookingRepo.created)
}

func TestExecutePastDateRejected(t *testing.T) {
	uc := newTestUseCase(defaultCatalog(), &fakeBookingRepo{}, &fakeBlockRepo{}, &fakeTxManager{})

	req := validRequest()
	req.Date = time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(defaultCatalog(), &fakeBookingRepo{}, &fakeBlockRepo{}, &fakeTxManager{})

	t.Run("missing customer name", func(t *testing.T) {
		req := validRequest()
		req.CustomerName = "  "
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("party size above limit", func(t *testing.T) {
		req := validRequest()
		req.PartySize = domain.MaxPartySize + 1
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative duration other than sentinel", func(t *testing.T) {
		req := validRequest()
		req.DurationMinutes = -5
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecuteUntilCloseSentinelAccepted(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	uc := newTestUseCase(defaultCatalog(), bookingRepo, &fakeBlockRepo{}, &fakeTxManager{})

	req := validRequest()
	req.DurationMinutes = domain.DurationUntilClose
	req.PartySize = 4

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.DurationUntilClose, resp.DurationMinutes,
		"sentinel is stored as-is and resolved against hours on read")
	require.NotNil(t, bookingRepo.created)
	assert.Equal(t, domain.DurationUntilClose, bookingRepo.created.DurationMinutes)
}

func TestExecuteBlockedDate(t *testing.T) {
	blocks := &fakeBlockRepo{blocks: []domain.AvailabilityBlock{{
		ID:       1,
		Scope:    domain.ScopeRoom,
		RoomID:   ptr.Ptr(int64(1)),
		Type:     domain.BlockBlackout,
		StartsAt: ptr.Ptr(time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)),
		EndsAt:   ptr.Ptr(time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)),
		Active:   true,
	}}}
	uc := newTestUseCase(defaultCatalog(), &fakeBookingRepo{}, blocks, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeBlocked)
}

func TestExecuteCrossRoomResultRejected(t *testing.T) {
	// Two rooms of small adjacent tables: only the pooled venue can seat
	// the party, and a booking cannot span rooms.
	catalog := defaultCatalog()
	catalog.rooms = append(catalog.rooms, domain.Room{ID: 2, Name: "Hall", Active: true})
	catalog.tables = append(catalog.tables,
		domain.Table{ID: 21, RoomID: 2, Name: "H1", Capacity: 4, Combinable: true, Active: true, PublicBookable: true})
	catalog.layouts = append(catalog.layouts,
		&domain.TableLayout{TableID: 21, PosX: 200, PosY: 0, Width: 80, Height: 80})
	catalog.hours[2] = openAllWeek(2, "12:00", "23:00")

	bookingRepo := &fakeBookingRepo{}
	uc := newTestUseCase(catalog, bookingRepo, &fakeBlockRepo{}, &fakeTxManager{})

	req := validRequest()
	req.PartySize = 9
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoCapacity)
	assert.Nil(t, bookingRepo.created)
}
