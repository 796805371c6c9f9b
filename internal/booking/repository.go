package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the booking and its lines in one transaction.
	// It returns ErrSlotTaken when another live booking holds the same studio slot.
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.user_id", "b.studio_id", "s.name", "b.studio_rate", "b.style", "to_char(b.booking_date, 'YYYY-MM-DD')", "b.time_label",
	"b.start_time", "b.video_count", "b.global_quantity", "b.estimated_hours",
	"b.line_costs_sum", "b.studio_cost", "b.platform_fee", "b.total", "b.status",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.UserID, &b.StudioID, &b.StudioName, &b.StudioRate, &b.Style, &b.Date, &b.TimeLabel,
		&b.StartTime, &b.VideoCount, &b.GlobalQuantity, &b.EstimatedHours,
		&b.LineCostsSum, &b.StudioCost, &b.PlatformFee, &b.Total, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func insertBookingQuery(b *Booking) squirrel.InsertBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Insert("public.bookings").
		Columns(
			"user_id", "studio_id", "studio_rate", "style", "booking_date", "time_label", "start_time",
			"video_count", "global_quantity", "estimated_hours",
			"line_costs_sum", "studio_cost", "platform_fee", "total", "status",
		).
		Values(
			b.UserID, b.StudioID, b.StudioRate, b.Style, b.Date, b.TimeLabel, b.StartTime,
			b.VideoCount, b.GlobalQuantity, b.EstimatedHours,
			b.LineCostsSum, b.StudioCost, b.PlatformFee, b.Total, b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at")
}

func insertLinesQuery(bookingID string, lines []Line) squirrel.InsertBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Insert("public.booking_lines").
		Columns("booking_id", "position", "creator_id", "quantity", "sample_id", "hourly_rate", "cost")
	for i, l := range lines {
		var sample any
		if l.SampleID != "" {
			sample = l.SampleID
		}
		q = q.Values(bookingID, i, l.CreatorID, l.Quantity, sample, l.HourlyRate, l.Cost)
	}
	return q
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query, args, err := insertBookingQuery(b).ToSql()
		if err != nil {
			return fmt.Errorf("build create booking query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return err
		}

		if len(b.Lines) == 0 {
			return nil
		}
		query, args, err = insertLinesQuery(b.ID, b.Lines).ToSql()
		if err != nil {
			return fmt.Errorf("build create booking lines query failed: %w", err)
		}
		_, err = tx.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.resources s ON b.studio_id = s.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	lines, err := r.listLines(ctx, []string{b.ID})
	if err != nil {
		return nil, err
	}
	b.Lines = lines[b.ID]
	return &b, nil
}

func listBookingsQuery(filter Filter) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(bookingColumns, "count(*) OVER() as total_count")...).
		From("public.bookings b").
		Join("public.resources s ON b.studio_id = s.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("b.start_time "+orderDir, "b.id "+orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	return query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	sql, args, err := listBookingsQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var ids []string
	var total int

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	if len(ids) == 0 {
		return bookings, total, nil
	}
	lines, err := r.listLines(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, b := range bookings {
		b.Lines = lines[b.ID]
	}

	return bookings, total, nil
}

func (r *pgxRepository) listLines(ctx context.Context, bookingIDs []string) (map[string][]Line, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"bl.booking_id", "bl.creator_id", "c.name", "bl.quantity", "COALESCE(bl.sample_id::text, '')",
		"bl.hourly_rate", "bl.cost",
	).
		From("public.booking_lines bl").
		Join("public.resources c ON bl.creator_id = c.id").
		Where(squirrel.Eq{"bl.booking_id": bookingIDs}).
		OrderBy("bl.booking_id", "bl.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list booking lines query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list booking lines failed: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]Line, len(bookingIDs))
	for rows.Next() {
		var bookingID string
		var l Line
		if err := rows.Scan(&bookingID, &l.CreatorID, &l.CreatorName, &l.Quantity, &l.SampleID, &l.HourlyRate, &l.Cost); err != nil {
			return nil, fmt.Errorf("scan booking line failed: %w", err)
		}
		out[bookingID] = append(out[bookingID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking lines failed: %w", err)
	}
	return out, nil
}
