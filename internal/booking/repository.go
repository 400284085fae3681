package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus transitions the booking to the given status only if its
	// current status is one of from. Returns false when no row matched,
	// which callers treat as losing the race for this transition.
	UpdateStatus(ctx context.Context, id string, from []Status, to Status) (bool, error)

	// HasConfirmedBetween reports whether a confirmed booking exists linking
	// the facility owner and the player. This is the conversation gate.
	HasConfirmedBetween(ctx context.Context, ownerID, playerID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	// The booking id is generated by the caller because it doubles as the
	// gateway receipt reference and must exist before the order does.
	const query = `
		INSERT INTO public.bookings (id, slot_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		b.ID,
		b.SlotID,
		b.UserID,
		b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.slot_id", "b.user_id", "b.status", "b.created_at", "b.updated_at",
		"s.facility_id", "s.owner_id", "s.start_time", "s.end_time", "s.price",
	).
		From("public.bookings b").
		Join("public.slots s ON b.slot_id = s.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.SlotID, &b.UserID, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&b.FacilityID, &b.OwnerID, &b.StartTime, &b.EndTime, &b.Price,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.slot_id", "b.user_id", "b.status", "b.created_at", "b.updated_at",
		"s.facility_id", "s.owner_id", "s.start_time", "s.end_time", "s.price",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.slots s ON b.slot_id = s.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"s.owner_id": filter.OwnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	query = query.OrderBy("b.created_at DESC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.SlotID, &b.UserID, &b.Status, &b.CreatedAt, &b.UpdatedAt,
			&b.FacilityID, &b.OwnerID, &b.StartTime, &b.EndTime, &b.Price, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from []Status, to Status) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) HasConfirmedBetween(ctx context.Context, ownerID, playerID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings b").
		Join("public.slots s ON b.slot_id = s.id").
		Where(squirrel.Eq{"s.owner_id": ownerID}).
		Where(squirrel.Eq{"b.user_id": playerID}).
		Where(squirrel.Eq{"b.status": StatusConfirmed})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build confirmed-between query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check confirmed-between failed: %w", err)
	}
	return exists, nil
}
