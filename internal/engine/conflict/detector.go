// Package conflict computes the set of tables already held by confirmed
// bookings overlapping a candidate time window. This set is authoritative:
// the optimizer never considers a table it contains.
package conflict

import (
	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/engine/timewindow"
)

// Logger is the logging surface the detector needs.
type Logger interface {
	Warn(format string, v ...interface{})
}

// Detector scans one day's bookings for time-overlap conflicts.
type Detector struct {
	// dayByRoom carries each room's opening hours for the scanned date,
	// needed to resolve until-close booking durations.
	dayByRoom map[int64]domain.DayHours
	logger    Logger
}

// NewDetector builds a detector for a single date's snapshot.
func NewDetector(dayByRoom map[int64]domain.DayHours, logger Logger) *Detector {
	return &Detector{dayByRoom: dayByRoom, logger: logger}
}

// ReservedTableIDs returns the identifiers of every table assigned to a
// confirmed booking whose interval overlaps the candidate. Cancelled
// bookings never conflict. excludeBookingID skips the booking under edit.
// Bookings whose interval cannot be computed are logged and skipped so a
// single malformed record does not abort the whole computation.
func (d *Detector) ReservedTableIDs(bookings []*domain.Booking, candidate timewindow.Interval, excludeBookingID *int64) map[int64]struct{} {
	reserved := make(map[int64]struct{})

	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}

		duration, err := timewindow.ResolveDuration(b.DurationMinutes, b.StartTime, d.dayByRoom[b.RoomID])
		if err != nil {
			if d.logger != nil {
				d.logger.Warn("conflict: booking id=%d has unresolvable duration, skipping: %v", b.ID, err)
			}
			continue
		}

		interval, err := timewindow.New(b.BookingDate, b.StartTime, duration)
		if err != nil {
			if d.logger != nil {
				d.logger.Warn("conflict: booking id=%d has malformed time data, skipping: %v", b.ID, err)
			}
			continue
		}

		if interval.Overlaps(candidate) {
			for _, tableID := range b.TableIDs {
				reserved[tableID] = struct{}{}
			}
		}
	}

	return reserved
}
