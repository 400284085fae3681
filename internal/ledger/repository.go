package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Get(ctx context.Context, payeeID string, payeeType PayeeType) (*Entry, error)

	// Upsert creates the entry with the given total, or overwrites the total
	// of an existing one. Used by the read-modify-write fallback path.
	Upsert(ctx context.Context, payeeID string, payeeType PayeeType, total float64) error
}

// AtomicIncrementer is the optional fast path: a single statement that
// adds the delta server-side, avoiding the lost-update window of
// read-modify-write. Stores that support it implement this alongside
// Repository.
type AtomicIncrementer interface {
	AddDelta(ctx context.Context, payeeID string, payeeType PayeeType, delta float64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Get(ctx context.Context, payeeID string, payeeType PayeeType) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"payee_id", "payee_type", "total", "created_at", "updated_at",
	).
		From("public.ledger_entries").
		Where(squirrel.Eq{"payee_id": payeeID, "payee_type": payeeType}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get ledger entry query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var e Entry
	if err := row.Scan(&e.PayeeID, &e.PayeeType, &e.Total, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ledger entry failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) Upsert(ctx context.Context, payeeID string, payeeType PayeeType, total float64) error {
	const query = `
		INSERT INTO public.ledger_entries (payee_id, payee_type, total)
		VALUES ($1, $2, $3)
		ON CONFLICT (payee_id, payee_type)
		DO UPDATE SET total = EXCLUDED.total, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, payeeID, payeeType, total); err != nil {
		return fmt.Errorf("upsert ledger entry failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) AddDelta(ctx context.Context, payeeID string, payeeType PayeeType, delta float64) error {
	// The increment happens inside the statement, so concurrent credits to
	// the same payee cannot lose updates.
	const query = `
		INSERT INTO public.ledger_entries (payee_id, payee_type, total)
		VALUES ($1, $2, $3)
		ON CONFLICT (payee_id, payee_type)
		DO UPDATE SET total = public.ledger_entries.total + EXCLUDED.total, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, payeeID, payeeType, delta); err != nil {
		return fmt.Errorf("add ledger delta failed: %w", err)
	}
	return nil
}
