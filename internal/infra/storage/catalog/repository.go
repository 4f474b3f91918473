package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/pkg/dbmetrics"
	"github.com/castlepub/reservation-system-sub000/pkg/psqlbuilder"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// Repository reads the venue catalog: rooms, tables, floor-plan layouts
// and weekly opening hours. The catalog is administered out of band and
// is read-only from the engine's point of view.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a catalog repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRooms returns all rooms, active and inactive.
func (r *Repository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "active").
		From("rooms").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Active); err != nil {
			return nil, fmt.Errorf("%w: ListRooms - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRooms - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// GetRoom returns one room by id.
func (r *Repository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "active").
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.Room
	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &room.Name, &room.Active)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - scan room: %v", ErrScanRow, err)
	}

	return &room, nil
}

// ListTables returns all tables across all rooms.
func (r *Repository) ListTables(ctx context.Context) ([]domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"room_id",
		"name",
		"capacity",
		"combinable",
		"active",
		"public_bookable",
	).
		From("tables").
		OrderBy("room_id ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTables - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]domain.Table, 0)
	for rows.Next() {
		var t domain.Table
		err := rows.Scan(
			&t.ID,
			&t.RoomID,
			&t.Name,
			&t.Capacity,
			&t.Combinable,
			&t.Active,
			&t.PublicBookable,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListTables - scan row: %v", ErrScanRow, err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTables - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// ListLayouts returns every stored floor-plan layout. Geometry validation
// happens downstream; a malformed record is returned as-is.
func (r *Repository) ListLayouts(ctx context.Context) ([]*domain.TableLayout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"table_id",
		"pos_x",
		"pos_y",
		"width",
		"height",
		"connected_to",
		"is_connected",
	).
		From("table_layouts").
		OrderBy("table_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLayouts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLayouts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	layouts := make([]*domain.TableLayout, 0)
	for rows.Next() {
		var layout domain.TableLayout
		err := rows.Scan(
			&layout.TableID,
			&layout.PosX,
			&layout.PosY,
			&layout.Width,
			&layout.Height,
			&layout.ConnectedTo,
			&layout.IsConnected,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListLayouts - scan row: %v", ErrScanRow, err)
		}
		layouts = append(layouts, &layout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLayouts - rows error: %v", ErrScanRow, err)
	}

	return layouts, nil
}

// GetRoomHours returns each room's weekly schedule keyed by room id.
// Weekdays without a stored row stay zero-valued, which reads as closed.
func (r *Repository) GetRoomHours(ctx context.Context) (map[int64]domain.RoomHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"room_id",
		"weekday",
		"open_time",
		"close_time",
		"closed",
	).
		From("room_hours").
		OrderBy("room_id ASC, weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make(map[int64]domain.RoomHours)
	for rows.Next() {
		var (
			roomID           int64
			weekday          int
			openRaw, closeRaw sql.NullString
			day              domain.DayHours
		)
		err := rows.Scan(&roomID, &weekday, &openRaw, &closeRaw, &day.Closed)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRoomHours - scan row: %v", ErrScanRow, err)
		}
		if weekday < 0 || weekday > 6 {
			return nil, fmt.Errorf("%w: GetRoomHours - weekday %d out of range", ErrScanRow, weekday)
		}
		day.Weekday = time.Weekday(weekday)
		if day.OpenTime, err = nullableTime(openRaw); err != nil {
			return nil, fmt.Errorf("%w: GetRoomHours - open_time: %v", ErrScanRow, err)
		}
		if day.CloseTime, err = nullableTime(closeRaw); err != nil {
			return nil, fmt.Errorf("%w: GetRoomHours - close_time: %v", ErrScanRow, err)
		}

		rh, ok := hours[roomID]
		if !ok {
			rh = domain.RoomHours{RoomID: roomID}
			for wd := range rh.Days {
				rh.Days[wd] = domain.DayHours{Weekday: time.Weekday(wd), Closed: true}
			}
		}
		rh.Days[weekday] = day
		hours[roomID] = rh
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRoomHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// nullableTime converts a nullable TIME column value into a *TimeString.
func nullableTime(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid {
		return nil, nil
	}
	var ts types.TimeString
	if err := ts.Scan(v.String); err != nil {
		return nil, err
	}
	return &ts, nil
}
