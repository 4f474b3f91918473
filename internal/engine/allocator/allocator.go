// Package allocator orchestrates the allocation pipeline: availability
// blocks short-circuit closed scopes, the conflict detector excludes
// reserved tables, and the optimizer picks the best combination. Rooms
// are tried as an explicit, ordered sequence of strategies: the preferred
// room, then each active room independently, then a last-resort pool
// across all rooms.
package allocator

import (
	"errors"
	"fmt"
	"time"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/engine/adjacency"
	"github.com/castlepub/reservation-system-sub000/internal/engine/blocks"
	"github.com/castlepub/reservation-system-sub000/internal/engine/conflict"
	"github.com/castlepub/reservation-system-sub000/internal/engine/optimizer"
	"github.com/castlepub/reservation-system-sub000/internal/engine/timewindow"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// Logger is the logging surface the allocator needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Snapshot is the read-only data an allocation decision is computed over.
// The caller loads it once per request; the allocator never mutates it and
// holds no state between calls.
type Snapshot struct {
	Rooms    []domain.Room
	Tables   []domain.Table
	Layouts  []*domain.TableLayout
	Bookings []*domain.Booking // the request date's bookings, with table assignments
	Blocks   []domain.AvailabilityBlock
	Hours    map[int64]domain.RoomHours // by room id
}

// Request describes one allocation question.
type Request struct {
	Date      time.Time
	StartTime types.TimeString
	// DurationMinutes may be domain.DurationUntilClose.
	DurationMinutes int
	PartySize       int
	// RoomID restricts the search to one room when set.
	RoomID *int64
	// PublicOnly drops tables not flagged publicly bookable.
	PublicOnly bool
	// ExcludeBookingID skips the booking under edit during conflict checks.
	ExcludeBookingID *int64
	// ExcludeTableIDs removes specific tables from consideration.
	ExcludeTableIDs []int64
	// Now is the evaluation instant for release gates.
	Now time.Time
}

// Result is a successful allocation. Room is nil when the combination
// spans rooms (last-resort fallback).
type Result struct {
	Room          *domain.Room
	Tables        []domain.Table
	TotalCapacity int
	Score         float64
}

// Allocator performs stateless, side-effect-free allocation decisions.
type Allocator struct {
	logger Logger
}

// New creates an allocator.
func New(logger Logger) *Allocator {
	return &Allocator{logger: logger}
}

// Allocate finds the best table combination for the request, or nil when
// no combination covers the party size (the expected "unavailable"
// outcome). Blocked and closed scopes are reported as distinct errors so
// callers can present a specific message.
func (a *Allocator) Allocate(snap *Snapshot, req *Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	resolver := blocks.NewResolver(snap.Blocks, a.logger)
	grapher := adjacency.NewGrapher(snap.Layouts, a.logger)
	detector := conflict.NewDetector(dayByRoom(snap, req.Date), a.logger)

	if req.RoomID != nil {
		room := findRoom(snap.Rooms, *req.RoomID)
		if room == nil {
			return nil, ErrRoomNotFound
		}
		res, err := a.allocateInRoom(snap, req, room, resolver, grapher, detector)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, nil
		}
		return &Result{Room: room, Tables: res.Tables, TotalCapacity: res.TotalCapacity(), Score: res.Score}, nil
	}

	// Strategy 2: each active room independently, best score wins.
	var (
		best     *Result
		anyOpen  bool
		blocked  int
		admitted []*domain.Room
	)
	for i := range snap.Rooms {
		room := &snap.Rooms[i]
		if !room.Active {
			continue
		}
		res, err := a.allocateInRoom(snap, req, room, resolver, grapher, detector)
		switch {
		case errors.Is(err, ErrClosed):
			continue
		case errors.Is(err, ErrBlocked):
			blocked++
			continue
		case err != nil:
			return nil, err
		}
		anyOpen = true
		admitted = append(admitted, room)
		if res != nil && (best == nil || res.Score < best.Score) {
			best = &Result{Room: room, Tables: res.Tables, TotalCapacity: res.TotalCapacity(), Score: res.Score}
		}
	}
	if best != nil {
		return best, nil
	}

	// Strategy 3: last-resort pool across all admissible rooms. Kept
	// because a single fragmented room can fail a party the venue as a
	// whole could seat.
	if len(admitted) > 0 {
		res, err := a.allocateAcrossRooms(snap, req, admitted, resolver, grapher, detector)
		if err != nil {
			return nil, err
		}
		if res != nil {
			a.logger.Info("allocator: cross-room fallback seated party of %d across %d tables",
				req.PartySize, len(res.Tables))
			return &Result{Room: nil, Tables: res.Tables, TotalCapacity: res.TotalCapacity(), Score: res.Score}, nil
		}
	}

	if !anyOpen {
		if blocked > 0 {
			return nil, ErrBlocked
		}
		return nil, ErrClosed
	}
	return nil, nil
}

// allocateInRoom runs the single-room pipeline. A nil result with nil
// error means the room is open but cannot seat the party.
func (a *Allocator) allocateInRoom(
	snap *Snapshot,
	req *Request,
	room *domain.Room,
	resolver *blocks.Resolver,
	grapher *adjacency.Grapher,
	detector *conflict.Detector,
) (*optimizer.Result, error) {
	interval, err := a.roomInterval(snap, req, room.ID)
	if err != nil {
		return nil, err
	}

	if resolver.IsRoomBlocked(room.ID, req.Date, interval.Start, req.Now) {
		return nil, ErrBlocked
	}

	reserved := detector.ReservedTableIDs(snap.Bookings, interval, req.ExcludeBookingID)
	candidates := a.candidateTables(snap, req, resolver, reserved, func(t *domain.Table) bool {
		return t.RoomID == room.ID
	}, interval)

	return optimizer.FindCombination(candidates, req.PartySize, grapher), nil
}

// allocateAcrossRooms pools candidates from every admissible room and runs
// the optimizer without the single-room restriction. All other constraints
// (blocks, conflicts, adjacency, combinable flags) still hold. An
// until-close duration resolves against the latest close among the pooled
// rooms, which is the conservative choice for conflict detection.
func (a *Allocator) allocateAcrossRooms(
	snap *Snapshot,
	req *Request,
	rooms []*domain.Room,
	resolver *blocks.Resolver,
	grapher *adjacency.Grapher,
	detector *conflict.Detector,
) (*optimizer.Result, error) {
	var widest *timewindow.Interval
	roomSet := make(map[int64]struct{}, len(rooms))
	for _, room := range rooms {
		roomSet[room.ID] = struct{}{}
		interval, err := a.roomInterval(snap, req, room.ID)
		if err != nil {
			continue
		}
		if widest == nil || interval.End.After(widest.End) {
			widest = &interval
		}
	}
	if widest == nil {
		return nil, nil
	}

	reserved := detector.ReservedTableIDs(snap.Bookings, *widest, req.ExcludeBookingID)
	candidates := a.candidateTables(snap, req, resolver, reserved, func(t *domain.Table) bool {
		_, ok := roomSet[t.RoomID]
		return ok
	}, *widest)

	return optimizer.FindCombination(candidates, req.PartySize, grapher), nil
}

// roomInterval resolves the request's duration against the room's hours
// for the date and builds the candidate interval. Returns ErrClosed when
// the room is shut or the start time falls outside service hours.
func (a *Allocator) roomInterval(snap *Snapshot, req *Request, roomID int64) (timewindow.Interval, error) {
	hours, ok := snap.Hours[roomID]
	if !ok {
		return timewindow.Interval{}, ErrClosed
	}
	day := hours.ForDate(req.Date)
	if !day.IsOpen() {
		return timewindow.Interval{}, ErrClosed
	}
	if !startWithinHours(req.StartTime, day) {
		return timewindow.Interval{}, ErrClosed
	}

	duration, err := timewindow.ResolveDuration(req.DurationMinutes, req.StartTime, day)
	if err != nil {
		return timewindow.Interval{}, ErrClosed
	}
	interval, err := timewindow.New(req.Date, req.StartTime, duration)
	if err != nil {
		return timewindow.Interval{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return interval, nil
}

// candidateTables filters the snapshot's tables down to the open,
// unreserved pool the optimizer may draw from.
func (a *Allocator) candidateTables(
	snap *Snapshot,
	req *Request,
	resolver *blocks.Resolver,
	reserved map[int64]struct{},
	inScope func(t *domain.Table) bool,
	interval timewindow.Interval,
) []domain.Table {
	excluded := make(map[int64]struct{}, len(req.ExcludeTableIDs))
	for _, id := range req.ExcludeTableIDs {
		excluded[id] = struct{}{}
	}

	candidates := make([]domain.Table, 0, len(snap.Tables))
	for _, t := range snap.Tables {
		if !t.Active || !inScope(&t) {
			continue
		}
		if req.PublicOnly && !t.PublicBookable {
			continue
		}
		if _, ok := reserved[t.ID]; ok {
			continue
		}
		if _, ok := excluded[t.ID]; ok {
			continue
		}
		if resolver.IsTableBlocked(t.ID, req.Date, interval.Start, req.Now) {
			continue
		}
		candidates = append(candidates, t)
	}
	return candidates
}

func validate(req *Request) error {
	if req.PartySize <= 0 {
		return fmt.Errorf("%w: party size must be positive", ErrInvalidRequest)
	}
	if req.DurationMinutes != domain.DurationUntilClose && req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
	}
	if _, err := req.StartTime.Minutes(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func findRoom(rooms []domain.Room, id int64) *domain.Room {
	for i := range rooms {
		if rooms[i].ID == id && rooms[i].Active {
			return &rooms[i]
		}
	}
	return nil
}

// dayByRoom extracts each room's schedule for the date, for until-close
// duration resolution during conflict scans.
func dayByRoom(snap *Snapshot, date time.Time) map[int64]domain.DayHours {
	out := make(map[int64]domain.DayHours, len(snap.Hours))
	for roomID, hours := range snap.Hours {
		out[roomID] = hours.ForDate(date)
	}
	return out
}

// startWithinHours reports whether the start time falls inside the day's
// service window, accounting for closes past midnight.
func startWithinHours(start types.TimeString, day domain.DayHours) bool {
	startMin, err := start.Minutes()
	if err != nil {
		return false
	}
	openMin, err := day.OpenTime.Minutes()
	if err != nil {
		return false
	}
	closeMin, err := day.CloseTime.Minutes()
	if err != nil {
		return false
	}
	if closeMin <= openMin {
		// Overnight service window: [open, 24:00) plus [00:00, close).
		return startMin >= openMin || startMin < closeMin
	}
	return startMin >= openMin && startMin < closeMin
}
