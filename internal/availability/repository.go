package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// BookedStarts returns start times of non-rejected bookings that use the resource
	// (as studio or as creator) and start within [from, to].
	BookedStarts(ctx context.Context, resourceID string, from, to time.Time) ([]time.Time, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func bookedStartsQuery(resourceID string, from, to time.Time) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select("b.start_time").
		From("public.bookings b").
		Where(squirrel.Or{
			squirrel.Eq{"b.studio_id": resourceID},
			squirrel.Expr("EXISTS (SELECT 1 FROM public.booking_lines bl WHERE bl.booking_id = b.id AND bl.creator_id = ?)", resourceID),
		}).
		Where(squirrel.NotEq{"b.status": "rejected"}).
		Where(squirrel.GtOrEq{"b.start_time": from}).
		Where(squirrel.LtOrEq{"b.start_time": to}).
		OrderBy("b.start_time ASC")
}

func (r *pgxRepository) BookedStarts(ctx context.Context, resourceID string, from, to time.Time) ([]time.Time, error) {
	sql, args, err := bookedStartsQuery(resourceID, from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booked starts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query booked starts failed: %w", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var st time.Time
		if err := rows.Scan(&st); err != nil {
			return nil, fmt.Errorf("scan booked start failed: %w", err)
		}
		starts = append(starts, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked starts failed: %w", err)
	}
	return starts, nil
}
