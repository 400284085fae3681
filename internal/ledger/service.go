package ledger

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type Service interface {
	// Credit applies a signed delta to the payee's running total, creating
	// the entry lazily on first credit. Negative deltas reverse earnings.
	Credit(ctx context.Context, payeeID string, payeeType PayeeType, delta float64) error

	// Balance returns the payee's entry, or a zero-total entry if the payee
	// has never been credited.
	Balance(ctx context.Context, payeeID string, payeeType PayeeType) (*Entry, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Credit(ctx context.Context, payeeID string, payeeType PayeeType, delta float64) error {
	// Capability check: prefer the store's atomic increment when it has one.
	if inc, ok := s.repo.(AtomicIncrementer); ok {
		return inc.AddDelta(ctx, payeeID, payeeType, delta)
	}

	// Read-modify-write fallback. Same contract, weaker concurrency
	// character (lost-update window under concurrent credits).
	entry, err := s.repo.Get(ctx, payeeID, payeeType)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.repo.Upsert(ctx, payeeID, payeeType, delta)
		}
		return err
	}

	return s.repo.Upsert(ctx, payeeID, payeeType, entry.Total+delta)
}

func (s *service) Balance(ctx context.Context, payeeID string, payeeType PayeeType) (*Entry, error) {
	entry, err := s.repo.Get(ctx, payeeID, payeeType)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Entry{PayeeID: payeeID, PayeeType: payeeType}, nil
		}
		return nil, err
	}
	return entry, nil
}
