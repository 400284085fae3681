package conversation

import "context"

// BookingDirectory is the slice of the booking module the gate needs.
type BookingDirectory interface {
	HasConfirmedBooking(ctx context.Context, ownerID, playerID string) (bool, error)
}

// Service is the conversation gate: chat creation lives in an external
// subsystem, which consults this predicate before pairing a facility owner
// with a player. No conversation is ever created here.
type Service interface {
	Eligible(ctx context.Context, ownerID, playerID string) (bool, error)
}

type service struct {
	bookings BookingDirectory
}

func NewService(bookings BookingDirectory) Service {
	return &service{bookings: bookings}
}

func (s *service) Eligible(ctx context.Context, ownerID, playerID string) (bool, error) {
	return s.bookings.HasConfirmedBooking(ctx, ownerID, playerID)
}
