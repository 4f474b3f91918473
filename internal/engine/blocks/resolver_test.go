package blocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/pkg/ptr"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestBlackoutBlock(t *testing.T) {
	// Global blackout over the 2025 Christmas days.
	block := domain.AvailabilityBlock{
		ID:       1,
		Scope:    domain.ScopeGlobal,
		Type:     domain.BlockBlackout,
		StartsAt: ptr.Ptr(at(2025, 12, 24, 0, 0)),
		EndsAt:   ptr.Ptr(at(2025, 12, 26, 0, 0)),
		Active:   true,
	}
	r := NewResolver([]domain.AvailabilityBlock{block}, nopLogger{})

	now := at(2025, 12, 1, 9, 0)

	t.Run("inside window blocks any room", func(t *testing.T) {
		date := at(2025, 12, 25, 0, 0)
		assert.True(t, r.IsRoomBlocked(1, date, at(2025, 12, 25, 18, 0), now))
		assert.True(t, r.IsRoomBlocked(42, date, at(2025, 12, 25, 18, 0), now))
	})

	t.Run("window start is inclusive, end exclusive", func(t *testing.T) {
		assert.True(t, r.IsRoomBlocked(1, at(2025, 12, 24, 0, 0), at(2025, 12, 24, 0, 0), now))
		assert.False(t, r.IsRoomBlocked(1, at(2025, 12, 26, 0, 0), at(2025, 12, 26, 0, 0), now))
	})

	t.Run("outside window", func(t *testing.T) {
		assert.False(t, r.IsRoomBlocked(1, at(2025, 12, 23, 0, 0), at(2025, 12, 23, 18, 0), now))
	})
}

func TestRoomAndTableScopes(t *testing.T) {
	roomBlock := domain.AvailabilityBlock{
		ID:       1,
		Scope:    domain.ScopeRoom,
		RoomID:   ptr.Ptr(int64(7)),
		Type:     domain.BlockBlackout,
		StartsAt: ptr.Ptr(at(2025, 6, 1, 0, 0)),
		EndsAt:   ptr.Ptr(at(2025, 6, 2, 0, 0)),
		Active:   true,
	}
	tableBlock := domain.AvailabilityBlock{
		ID:       2,
		Scope:    domain.ScopeTable,
		TableID:  ptr.Ptr(int64(33)),
		Type:     domain.BlockBlackout,
		StartsAt: ptr.Ptr(at(2025, 6, 1, 0, 0)),
		EndsAt:   ptr.Ptr(at(2025, 6, 2, 0, 0)),
		Active:   true,
	}
	r := NewResolver([]domain.AvailabilityBlock{roomBlock, tableBlock}, nopLogger{})

	date := at(2025, 6, 1, 0, 0)
	instant := at(2025, 6, 1, 19, 0)
	now := at(2025, 5, 20, 12, 0)

	assert.True(t, r.IsRoomBlocked(7, date, instant, now))
	assert.False(t, r.IsRoomBlocked(8, date, instant, now), "room block targets room 7 only")

	assert.True(t, r.IsTableBlocked(33, date, instant, now))
	assert.False(t, r.IsTableBlocked(34, date, instant, now))
	// Room-scoped blocks are not consulted for table queries.
	assert.False(t, r.IsTableBlocked(7, date, instant, now))
}

func TestInactiveBlockNeverApplies(t *testing.T) {
	block := domain.AvailabilityBlock{
		ID:       1,
		Scope:    domain.ScopeGlobal,
		Type:     domain.BlockBlackout,
		StartsAt: ptr.Ptr(at(2025, 6, 1, 0, 0)),
		EndsAt:   ptr.Ptr(at(2025, 6, 2, 0, 0)),
		Active:   false,
	}
	r := NewResolver([]domain.AvailabilityBlock{block}, nopLogger{})
	assert.False(t, r.IsRoomBlocked(1, at(2025, 6, 1, 0, 0), at(2025, 6, 1, 12, 0), at(2025, 5, 1, 0, 0)))
}

func TestReleaseGate(t *testing.T) {
	// Saturdays hidden until 10:00 Berlin time, same day only.
	block := domain.AvailabilityBlock{
		ID:          1,
		Scope:       domain.ScopeGlobal,
		Type:        domain.BlockRelease,
		Weekdays:    []int{int(time.Saturday)},
		ReleaseTime: ts("10:00"),
		Timezone:    "Europe/Berlin",
		Active:      true,
	}
	r := NewResolver([]domain.AvailabilityBlock{block}, nopLogger{})

	berlin, _ := time.LoadLocation("Europe/Berlin")
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, berlin) // a Saturday
	instant := time.Date(2025, 6, 7, 18, 0, 0, 0, berlin)

	t.Run("same day before release blocks", func(t *testing.T) {
		now := time.Date(2025, 6, 7, 9, 0, 0, 0, berlin)
		assert.True(t, r.IsRoomBlocked(1, saturday, instant, now))
	})

	t.Run("same day after release does not block", func(t *testing.T) {
		now := time.Date(2025, 6, 7, 11, 0, 0, 0, berlin)
		assert.False(t, r.IsRoomBlocked(1, saturday, instant, now))
	})

	t.Run("future saturday never blocked", func(t *testing.T) {
		nextSaturday := time.Date(2025, 6, 21, 0, 0, 0, 0, berlin)
		now := time.Date(2025, 6, 7, 9, 0, 0, 0, berlin)
		assert.False(t, r.IsRoomBlocked(1, nextSaturday, time.Date(2025, 6, 21, 18, 0, 0, 0, berlin), now))
	})

	t.Run("weekday mismatch never blocks", func(t *testing.T) {
		friday := time.Date(2025, 6, 6, 0, 0, 0, 0, berlin)
		now := time.Date(2025, 6, 6, 9, 0, 0, 0, berlin)
		assert.False(t, r.IsRoomBlocked(1, friday, time.Date(2025, 6, 6, 18, 0, 0, 0, berlin), now))
	})

	t.Run("no release time never blocks", func(t *testing.T) {
		gateless := block
		gateless.ReleaseTime = nil
		r2 := NewResolver([]domain.AvailabilityBlock{gateless}, nopLogger{})
		now := time.Date(2025, 6, 7, 9, 0, 0, 0, berlin)
		assert.False(t, r2.IsRoomBlocked(1, saturday, instant, now))
	})

	t.Run("unknown timezone fails open", func(t *testing.T) {
		broken := block
		broken.Timezone = "Mars/Olympus_Mons"
		r2 := NewResolver([]domain.AvailabilityBlock{broken}, nopLogger{})
		now := time.Date(2025, 6, 7, 9, 0, 0, 0, berlin)
		assert.False(t, r2.IsRoomBlocked(1, saturday, instant, now))
	})
}
