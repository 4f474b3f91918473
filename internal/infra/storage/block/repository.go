package block

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/pkg/dbmetrics"
	"github.com/castlepub/reservation-system-sub000/pkg/psqlbuilder"
	"github.com/castlepub/reservation-system-sub000/pkg/types"
)

// Repository reads availability blocks. Blocks are administered out of
// band; the engine only consumes them.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a block repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive returns all active availability blocks.
func (r *Repository) ListActive(ctx context.Context) ([]domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"scope",
		"room_id",
		"table_id",
		"block_type",
		"starts_at",
		"ends_at",
		"weekdays",
		"release_time",
		"timezone",
		"active",
	).
		From("availability_blocks").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.AvailabilityBlock, 0)
	for rows.Next() {
		var (
			b          domain.AvailabilityBlock
			weekdays   pq.Int64Array
			releaseRaw sql.NullString
			timezone   sql.NullString
		)
		err := rows.Scan(
			&b.ID,
			&b.Scope,
			&b.RoomID,
			&b.TableID,
			&b.Type,
			&b.StartsAt,
			&b.EndsAt,
			&weekdays,
			&releaseRaw,
			&timezone,
			&b.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		b.Weekdays = make([]int, len(weekdays))
		for i, wd := range weekdays {
			b.Weekdays[i] = int(wd)
		}
		b.Timezone = timezone.String

		if releaseRaw.Valid {
			var ts types.TimeString
			if err := ts.Scan(releaseRaw.String); err != nil {
				return nil, fmt.Errorf("%w: ListActive - release_time: %v", ErrScanRow, err)
			}
			b.ReleaseTime = &ts
		}

		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
