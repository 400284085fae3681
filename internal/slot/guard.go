package slot

import "context"

// Guard enforces at-most-one active booking per slot. Claim and Release
// are the only operations that may mutate the availability flag.
type Guard struct {
	repo Repository
}

func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// GetForBooking returns the slot a booking request refers to.
func (g *Guard) GetForBooking(ctx context.Context, id string) (*Slot, error) {
	return g.repo.GetByID(ctx, id)
}

// Claim reserves the slot. Returns ErrUnavailable if another booking holds
// it, ErrNotFound if the slot does not exist. A failed claim never flips
// the flag.
func (g *Guard) Claim(ctx context.Context, id string) error {
	claimed, err := g.repo.ClaimIfAvailable(ctx, id)
	if err != nil {
		return err
	}
	if claimed {
		return nil
	}

	// Distinguish "already claimed" from "no such slot".
	if _, err := g.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrUnavailable
}

// Release makes the slot bookable again. Idempotent.
func (g *Guard) Release(ctx context.Context, id string) error {
	return g.repo.Release(ctx, id)
}
