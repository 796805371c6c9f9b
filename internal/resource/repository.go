package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Resource, error) {
	const query = `
		SELECT id, category, name, hourly_rate, is_available, tags, created_at
		FROM public.resources
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var res Resource
	if err := row.Scan(
		&res.ID, &res.Category, &res.Name, &res.HourlyRate, &res.IsAvailable, &res.Tags, &res.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resource failed: %w", err)
	}
	return &res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Resource, error) {
	var args []any
	queryBase := `
		SELECT id, category, name, hourly_rate, is_available, tags, created_at
		FROM public.resources
		WHERE 1=1
	`
	paramIndex := 1

	if filter.Category != "" {
		queryBase += fmt.Sprintf(" AND category = $%d", paramIndex)
		args = append(args, filter.Category)
		paramIndex++
	}
	if filter.ActiveOnly {
		queryBase += " AND is_available = TRUE"
	}

	queryBase += " ORDER BY name ASC, id ASC"

	rows, err := r.pool.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources failed: %w", err)
	}
	defer rows.Close()

	var result []*Resource
	for rows.Next() {
		var res Resource
		if err := rows.Scan(
			&res.ID, &res.Category, &res.Name, &res.HourlyRate, &res.IsAvailable, &res.Tags, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resource failed: %w", err)
		}
		result = append(result, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources failed: %w", err)
	}

	return result, nil
}
