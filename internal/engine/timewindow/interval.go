// Package timewindow is the single source of interval arithmetic for the
// allocation engine. Every overlap decision in the system goes through
// Interval.Overlaps.
package timewindow

import (
	"errors"
	"fmt"
	"time"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

var (
	// ErrInvalidDuration is returned for non-positive, unresolved durations
	ErrInvalidDuration = errors.New("timewindow: invalid duration")

	// ErrRoomClosed is returned when an until-close duration cannot be
	// resolved because the room does not open that day
	ErrRoomClosed = errors.New("timewindow: room is closed")
)

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds the interval starting at the given time of day on date and
// running for durationMinutes. The duration must already be resolved
// (strictly positive); callers translate the until-close sentinel first.
// Durations past midnight simply extend into the next day.
func New(date time.Time, start types.TimeString, durationMinutes int) (Interval, error) {
	if durationMinutes <= 0 {
		return Interval{}, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}
	startAt, err := start.OnDate(date)
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		Start: startAt,
		End:   startAt.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// Overlaps reports whether the two half-open intervals intersect.
// Touching endpoints do not overlap: a booking ending at 20:00 does not
// conflict with one starting at 20:00.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether the instant t falls inside [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the interval length.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// ResolveDuration translates a stored duration into effective minutes.
// The domain.DurationUntilClose sentinel resolves to the span from start
// to the room's closing time for that day; a close time at or before the
// open time is an overnight close and rolls to the next day.
func ResolveDuration(durationMinutes int, start types.TimeString, day domain.DayHours) (int, error) {
	if durationMinutes != domain.DurationUntilClose {
		if durationMinutes <= 0 {
			return 0, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
		}
		return durationMinutes, nil
	}

	if !day.IsOpen() {
		return 0, ErrRoomClosed
	}

	startMin, err := start.Minutes()
	if err != nil {
		return 0, err
	}
	openMin, err := day.OpenTime.Minutes()
	if err != nil {
		return 0, err
	}
	closeMin, err := day.CloseTime.Minutes()
	if err != nil {
		return 0, err
	}

	// Overnight close: 18:00-01:00 means closing at 01:00 the next day.
	if closeMin <= openMin {
		closeMin += 24 * 60
	}
	if startMin < openMin {
		// Start before opening on an overnight schedule belongs to the
		// after-midnight stretch of the previous service day.
		startMin += 24 * 60
	}

	if closeMin <= startMin {
		return 0, fmt.Errorf("%w: start %s is at or past closing", ErrInvalidDuration, start)
	}
	return closeMin - startMin, nil
}
