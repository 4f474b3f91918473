// Package blocks answers "is this scope closed at this moment?" by
// combining one-off blackout windows with recurring same-day release gates.
package blocks

import (
	"time"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
)

// Logger is the logging surface the resolver needs.
type Logger interface {
	Warn(format string, v ...interface{})
}

// Resolver evaluates availability blocks over a loaded snapshot.
// Blocks are read-only inputs; the resolver never mutates anything.
type Resolver struct {
	blocks []domain.AvailabilityBlock
	logger Logger
}

// NewResolver builds a resolver over the given blocks. Inactive blocks
// are dropped up front.
func NewResolver(blocks []domain.AvailabilityBlock, logger Logger) *Resolver {
	active := make([]domain.AvailabilityBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Active {
			active = append(active, b)
		}
	}
	return &Resolver{blocks: active, logger: logger}
}

// IsRoomBlocked reports whether the room is closed for a booking on the
// civil date starting at instant at. Global- and room-scoped blocks both
// apply; any single blocking block suffices.
func (r *Resolver) IsRoomBlocked(roomID int64, date time.Time, at time.Time, now time.Time) bool {
	for i := range r.blocks {
		b := &r.blocks[i]
		if !b.AppliesToRoom(roomID) {
			continue
		}
		if r.blockApplies(b, date, at, now) {
			return true
		}
	}
	return false
}

// IsTableBlocked reports whether the individual table is closed. Only
// table-scoped blocks are considered; room-level closure is evaluated
// separately before individual tables.
func (r *Resolver) IsTableBlocked(tableID int64, date time.Time, at time.Time, now time.Time) bool {
	for i := range r.blocks {
		b := &r.blocks[i]
		if !b.AppliesToTable(tableID) {
			continue
		}
		if r.blockApplies(b, date, at, now) {
			return true
		}
	}
	return false
}

func (r *Resolver) blockApplies(b *domain.AvailabilityBlock, date, at, now time.Time) bool {
	switch b.Type {
	case domain.BlockBlackout:
		return blackoutApplies(b, at)
	case domain.BlockRelease:
		return r.releaseApplies(b, date, now)
	default:
		return false
	}
}

// blackoutApplies checks the half-open [StartsAt, EndsAt) window.
func blackoutApplies(b *domain.AvailabilityBlock, at time.Time) bool {
	if b.StartsAt == nil || b.EndsAt == nil {
		return false
	}
	return !at.Before(*b.StartsAt) && at.Before(*b.EndsAt)
}

// releaseApplies implements the same-day release gate: the scope is
// hidden only when the target date is "today" in the block's timezone,
// the weekday recurrence matches, and the release time has not yet
// passed. Future dates are never gated.
func (r *Resolver) releaseApplies(b *domain.AvailabilityBlock, date, now time.Time) bool {
	if b.ReleaseTime == nil || len(b.Weekdays) == 0 {
		return false
	}
	if !b.MatchesWeekday(date.Weekday()) {
		return false
	}

	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		// Fail open: a block with a broken timezone is logged and skipped
		// rather than making the venue unbookable.
		if r.logger != nil {
			r.logger.Warn("blocks: release block id=%d has unknown timezone %q, skipping", b.ID, b.Timezone)
		}
		return false
	}

	nowLocal := now.In(loc)
	ny, nm, nd := nowLocal.Date()
	ty, tm, td := date.Date()
	if ny != ty || nm != tm || nd != td {
		// The gate only hides same-day booking before the cutoff.
		return false
	}

	releaseMin, err := b.ReleaseTime.Minutes()
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("blocks: release block id=%d has malformed release time %q, skipping", b.ID, b.ReleaseTime.String())
		}
		return false
	}
	nowMin := nowLocal.Hour()*60 + nowLocal.Minute()
	return nowMin < releaseMin
}
