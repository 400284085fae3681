package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Slot, error)

	// ClaimIfAvailable flips the availability flag to false in a single
	// conditional update. Returns false if the slot was already claimed.
	ClaimIfAvailable(ctx context.Context, id string) (bool, error)

	// Release unconditionally flips the availability flag back to true.
	Release(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "facility_id", "owner_id", "start_time", "end_time",
		"price", "is_available", "created_at", "updated_at",
	).
		From("public.slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get slot query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var s Slot
	if err := row.Scan(
		&s.ID, &s.FacilityID, &s.OwnerID, &s.StartTime, &s.EndTime,
		&s.Price, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) ClaimIfAvailable(ctx context.Context, id string) (bool, error) {
	// The WHERE clause on is_available makes the claim atomic with respect
	// to concurrent callers: only one update can match.
	const query = `
		UPDATE public.slots
		SET is_available = false, updated_at = now()
		WHERE id = $1 AND is_available = true
	`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("claim slot failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) Release(ctx context.Context, id string) error {
	const query = `
		UPDATE public.slots
		SET is_available = true, updated_at = now()
		WHERE id = $1
	`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("release slot failed: %w", err)
	}
	return nil
}
