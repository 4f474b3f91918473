package domain

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// BlockScope is the level at which an availability block applies.
type BlockScope string

const (
	ScopeGlobal BlockScope = "global"
	ScopeRoom   BlockScope = "room"
	ScopeTable  BlockScope = "table"
)

// BlockType distinguishes one-off blackouts from recurring release gates.
type BlockType string

const (
	// BlockBlackout closes the scope for a fixed [StartsAt, EndsAt) window.
	BlockBlackout BlockType = "blackout"
	// BlockRelease hides the scope for same-day booking until the daily
	// release time has passed, on the configured weekdays.
	BlockRelease BlockType = "release"
)

// AvailabilityBlock is a read-only closure rule. Blocks are advisory
// filters administered out of band; the engine never mutates them.
type AvailabilityBlock struct {
	ID      int64
	Scope   BlockScope
	RoomID  *int64 // set when Scope == ScopeRoom
	TableID *int64 // set when Scope == ScopeTable
	Type    BlockType

	// Blackout window, half-open [StartsAt, EndsAt).
	StartsAt *time.Time
	EndsAt   *time.Time

	// Release recurrence: weekdays (time.Weekday values), daily release
	// time and the venue timezone the gate is evaluated in.
	Weekdays    []int
	ReleaseTime *types.TimeString
	Timezone    string

	Active bool
}

// AppliesToRoom reports whether the block covers the given room.
func (b *AvailabilityBlock) AppliesToRoom(roomID int64) bool {
	switch b.Scope {
	case ScopeGlobal:
		return true
	case ScopeRoom:
		return b.RoomID != nil && *b.RoomID == roomID
	default:
		return false
	}
}

// AppliesToTable reports whether the block covers the given table.
// Room-level closure is evaluated separately by the caller.
func (b *AvailabilityBlock) AppliesToTable(tableID int64) bool {
	return b.Scope == ScopeTable && b.TableID != nil && *b.TableID == tableID
}

// MatchesWeekday reports whether the release recurrence includes wd.
func (b *AvailabilityBlock) MatchesWeekday(wd time.Weekday) bool {
	for _, d := range b.Weekdays {
		if time.Weekday(d) == wd {
			return true
		}
	}
	return false
}
