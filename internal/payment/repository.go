package payment

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

var errDuplicate = errors.New("payment already exists for booking")

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*Payment, error)
	GetByBookingID(ctx context.Context, bookingID string) (*Payment, error)

	// MarkPaid transitions the payment to paid and records the captured
	// external payment id and computed cuts. Conditional on the payment
	// still being pending; returns false if another caller got there first.
	MarkPaid(ctx context.Context, orderID, externalPaymentID string, platformCut, ownerCut float64) (bool, error)

	// MarkRefunded transitions the payment to refunded. Conditional on the
	// payment being paid; returns false otherwise.
	MarkRefunded(ctx context.Context, id string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Payment) error {
	const query = `
		INSERT INTO public.payments (booking_id, user_id, owner_id, amount, currency, order_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		p.BookingID,
		p.UserID,
		p.OwnerID,
		p.Amount,
		p.Currency,
		p.OrderID,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return errDuplicate
		}
		return fmt.Errorf("create payment failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	return r.getBy(ctx, squirrel.Eq{"order_id": orderID})
}

func (r *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Payment, error) {
	return r.getBy(ctx, squirrel.Eq{"booking_id": bookingID})
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Payment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "booking_id", "user_id", "owner_id", "amount", "currency",
		"order_id", "external_payment_id", "status", "platform_cut", "owner_cut",
		"created_at", "updated_at",
	).
		From("public.payments").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payment query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var p Payment
	if err := row.Scan(
		&p.ID, &p.BookingID, &p.UserID, &p.OwnerID, &p.Amount, &p.Currency,
		&p.OrderID, &p.ExternalPaymentID, &p.Status, &p.PlatformCut, &p.OwnerCut,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) MarkPaid(ctx context.Context, orderID, externalPaymentID string, platformCut, ownerCut float64) (bool, error) {
	const query = `
		UPDATE public.payments
		SET status = 'paid',
		    external_payment_id = $2,
		    platform_cut = $3,
		    owner_cut = $4,
		    updated_at = now()
		WHERE order_id = $1 AND status = 'pending'
	`

	ct, err := r.pool.Exec(ctx, query, orderID, externalPaymentID, platformCut, ownerCut)
	if err != nil {
		return false, fmt.Errorf("mark payment paid failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) MarkRefunded(ctx context.Context, id string) (bool, error) {
	const query = `
		UPDATE public.payments
		SET status = 'refunded', updated_at = now()
		WHERE id = $1 AND status = 'paid'
	`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark payment refunded failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
