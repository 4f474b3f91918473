package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/pkg/dbmetrics"
	"github.com/castlepub/reservation-system-sub000/pkg/psqlbuilder"
)

// Repository persists bookings and their table assignments.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `id, room_id, customer_name, booking_date, start_time,
duration_minutes, party_size, status, notes, cancellation_reason, cancelled_at,
created_at, updated_at`

// Create inserts a booking and its table assignment rows.
//
// The insert is expected to run inside a serializable transaction started
// by the caller: conflict checks against the same date must see a
// consistent snapshot, otherwise two concurrent requests can seat
// overlapping parties on the same tables. The transaction travels through
// the context; without one, the rows are written non-atomically.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"customer_name",
			"booking_date",
			"start_time",
			"duration_minutes",
			"party_size",
			"status",
			"notes",
		).
		Values(
			booking.RoomID,
			booking.CustomerName,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.PartySize,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if len(booking.TableIDs) > 0 {
		insert := psqlbuilder.Insert("table_assignments").
			Columns("booking_id", "table_id")
		for _, tableID := range booking.TableIDs {
			insert = insert.Values(booking.ID, tableID)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build assignments insert: %v", ErrBuildQuery, err)
		}
		if _, err = executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - insert assignments: %v", ErrExecQuery, err)
		}
	}

	return booking, nil
}

// GetByID fetches one booking with its assigned table ids.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.attachTableIDs(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetConfirmedByDate lists the date's confirmed bookings across all rooms,
// with table assignments attached. This is the conflict-detection read.
//
// Inside a transaction the booking rows are locked with FOR UPDATE so a
// concurrent create against the same date serializes behind this read.
func (r *Repository) GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		OrderBy("start_time ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachTableIDs(ctx, executor, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetByRoomWithFilter lists a room's bookings with optional date and
// status filters. Cancelled bookings are excluded unless a status is
// requested explicitly or IncludeCancelled is set.
func (r *Repository) GetByRoomWithFilter(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"room_id": filter.RoomID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"booking_date": *filter.Date}).
			OrderBy("start_time ASC, id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachTableIDs(ctx, executor, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Cancel marks a booking cancelled with a reason. The assignment rows are
// kept for history; conflict detection ignores cancelled bookings.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// attachTableIDs loads the table assignments for the given bookings in one
// query and distributes them onto the structs.
func (r *Repository) attachTableIDs(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	bookingIDs := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
		bookingIDs = append(bookingIDs, b.ID)
	}

	query, args, err := psqlbuilder.Select("booking_id", "table_id").
		From("table_assignments").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("booking_id ASC, table_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachTableIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachTableIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID, tableID int64
		if err := rows.Scan(&bookingID, &tableID); err != nil {
			return fmt.Errorf("%w: attachTableIDs - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.TableIDs = append(b.TableIDs, tableID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachTableIDs - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.CustomerName,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.PartySize,
		&booking.Status,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
