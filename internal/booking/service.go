package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turfgrid/turf-booking-backend/internal/ledger"
	"github.com/turfgrid/turf-booking-backend/internal/payment"
	"github.com/turfgrid/turf-booking-backend/internal/slot"
)

type Service interface {
	// RequestBooking claims the slot, persists the pending booking and
	// payment, and opens a gateway order keyed by the booking id.
	RequestBooking(ctx context.Context, userID, slotID string) (*Booking, *OrderHandle, error)

	// VerifyPayment checks the client-submitted payment proof, captures the
	// payment, confirms the booking and posts the revenue split. Re-verifying
	// an already-paid payment is a no-op success.
	VerifyPayment(ctx context.Context, orderID, externalPaymentID, signature string) error

	// CancelByPlayer cancels the caller's booking, applying the fixed
	// penalty split when the booking was paid.
	CancelByPlayer(ctx context.Context, userID, bookingID string) (string, error)

	// CancelByOwner cancels a booking on the calling owner's facility with a
	// full refund and full ledger reversal, no penalty.
	CancelByOwner(ctx context.Context, ownerID, bookingID string) (string, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	ListForUser(ctx context.Context, userID string, filter Filter) ([]*Booking, int, error)
	ListForOwner(ctx context.Context, ownerID string, filter Filter) ([]*Booking, int, error)

	// HasConfirmedBooking is the conversation gate predicate consulted by
	// the external chat subsystem before creating a conversation.
	HasConfirmedBooking(ctx context.Context, ownerID, playerID string) (bool, error)
}

type service struct {
	guard    *slot.Guard
	repo     Repository
	payments payment.Repository
	gateway  payment.Gateway // nil when not configured
	settle   ledger.Service
	policy   Policy
	currency string
	logger   *zap.Logger
}

func NewService(
	guard *slot.Guard,
	repo Repository,
	payments payment.Repository,
	gateway payment.Gateway,
	settle ledger.Service,
	policy Policy,
	currency string,
	logger *zap.Logger,
) Service {
	return &service{
		guard:    guard,
		repo:     repo,
		payments: payments,
		gateway:  gateway,
		settle:   settle,
		policy:   policy,
		currency: currency,
		logger:   logger,
	}
}

func (s *service) RequestBooking(ctx context.Context, userID, slotID string) (*Booking, *OrderHandle, error) {
	sl, err := s.guard.GetForBooking(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}

	if s.gateway == nil {
		return nil, nil, payment.ErrGatewayUnavailable
	}

	// The claim is the mutual-exclusion point: everything after it is safe
	// to serialize, but the slot must never be left claimed on failure.
	if err := s.guard.Claim(ctx, slotID); err != nil {
		return nil, nil, err
	}

	bookingID := uuid.NewString()

	orderID, err := s.gateway.CreateOrder(ctx, sl.Price, s.currency, bookingID)
	if err != nil {
		s.releaseSlot(ctx, slotID)
		s.logger.Error("order creation failed, slot released",
			zap.String("slot_id", slotID), zap.Error(err))
		return nil, nil, ErrOrderFailed
	}

	b := &Booking{
		ID:     bookingID,
		SlotID: slotID,
		UserID: userID,
		Status: StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.releaseSlot(ctx, slotID)
		return nil, nil, err
	}

	p := &payment.Payment{
		BookingID: bookingID,
		UserID:    userID,
		OwnerID:   sl.OwnerID,
		Amount:    sl.Price,
		Currency:  s.currency,
		OrderID:   orderID,
		Status:    payment.StatusPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		s.releaseSlot(ctx, slotID)
		return nil, nil, err
	}

	handle := &OrderHandle{
		OrderID:  orderID,
		Amount:   sl.Price,
		Currency: s.currency,
	}
	return b, handle, nil
}

func (s *service) VerifyPayment(ctx context.Context, orderID, externalPaymentID, signature string) error {
	if s.gateway == nil {
		return payment.ErrGatewayUnavailable
	}

	// Reject before any side effects.
	if !s.gateway.VerifySignature(orderID, externalPaymentID, signature) {
		return payment.ErrInvalidSignature
	}

	p, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	switch p.Status {
	case payment.StatusPaid:
		// Duplicate delivery (client retry, webhook race). The ledger was
		// credited by whoever won the conditional capture below.
		return nil
	case payment.StatusRefunded:
		return ErrNotPayable
	}

	platformCut, ownerCut := s.policy.Split(p.Amount)

	captured, err := s.payments.MarkPaid(ctx, orderID, externalPaymentID, platformCut, ownerCut)
	if err != nil {
		return err
	}
	if !captured {
		// Lost the race to a concurrent verify; treat like the duplicate
		// path as long as the payment really is paid now.
		p, err := s.payments.GetByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if p.Status == payment.StatusPaid {
			return nil
		}
		return ErrNotPayable
	}

	confirmed, err := s.repo.UpdateStatus(ctx, p.BookingID, []Status{StatusPending}, StatusConfirmed)
	if err != nil {
		return err
	}
	if !confirmed {
		// The booking was cancelled while the payment was in flight. The
		// capture stands; flag it for manual reconciliation.
		s.logger.Error("payment captured for a booking that is no longer pending",
			zap.String("booking_id", p.BookingID), zap.String("order_id", orderID))
		return ErrNotPayable
	}

	if err := s.settle.Credit(ctx, ledger.PlatformPayeeID, ledger.PayeeTypePlatform, platformCut); err != nil {
		return fmt.Errorf("credit platform ledger failed: %w", err)
	}
	if err := s.settle.Credit(ctx, p.OwnerID, ledger.PayeeTypeOwner, ownerCut); err != nil {
		return fmt.Errorf("credit owner ledger failed: %w", err)
	}

	return nil
}

func (s *service) CancelByPlayer(ctx context.Context, userID, bookingID string) (string, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotCancellable
		}
		return "", err
	}
	if b.UserID != userID {
		return "", ErrNotAuthorized
	}

	paid, err := s.paidPayment(ctx, bookingID)
	if err != nil {
		return "", err
	}

	// The conditional transition is the idempotency guard: a concurrent
	// cancel or verify for the same booking loses here and nothing below
	// runs twice.
	cancelled, err := s.repo.UpdateStatus(ctx, bookingID,
		[]Status{StatusPending, StatusConfirmed}, StatusCancelledByUser)
	if err != nil {
		return "", err
	}
	if !cancelled {
		return "", ErrNotCancellable
	}

	msg := "booking cancelled"
	var bookErr error

	if paid != nil {
		refundAmount := s.policy.RefundAmount(paid.Amount)

		s.issueRefund(ctx, paid, refundAmount)

		if _, err := s.payments.MarkRefunded(ctx, paid.ID); err != nil {
			bookErr = err
		}

		// Take back the refunded fraction of the original credits, then
		// credit the fixed penalty split as new earnings. Both happen.
		platformRev, ownerRev := s.policy.ProportionalReversal(
			paid.PlatformCut, paid.OwnerCut, paid.Amount, refundAmount)

		if err := s.creditAll(ctx,
			credit{paid.OwnerID, ledger.PayeeTypeOwner, -ownerRev},
			credit{ledger.PlatformPayeeID, ledger.PayeeTypePlatform, -platformRev},
			credit{paid.OwnerID, ledger.PayeeTypeOwner, s.policy.PenaltyOwner},
			credit{ledger.PlatformPayeeID, ledger.PayeeTypePlatform, s.policy.PenaltyPlatform},
		); err != nil && bookErr == nil {
			bookErr = err
		}

		msg = fmt.Sprintf("booking cancelled, refund of %.2f %s initiated", refundAmount, paid.Currency)
	}

	s.releaseSlot(ctx, b.SlotID)

	return msg, bookErr
}

func (s *service) CancelByOwner(ctx context.Context, ownerID, bookingID string) (string, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotAuthorized
		}
		return "", err
	}
	if b.OwnerID != ownerID {
		return "", ErrNotAuthorized
	}

	paid, err := s.paidPayment(ctx, bookingID)
	if err != nil {
		return "", err
	}

	cancelled, err := s.repo.UpdateStatus(ctx, bookingID,
		[]Status{StatusPending, StatusConfirmed}, StatusCancelledByOwner)
	if err != nil {
		return "", err
	}
	if !cancelled {
		return "", ErrNotCancellable
	}

	msg := "booking cancelled by facility owner"
	var bookErr error

	if paid != nil {
		// Full refund, full reversal of both cuts, no penalty: the owner
		// bears no cost for withdrawing availability.
		s.issueRefund(ctx, paid, paid.Amount)

		if _, err := s.payments.MarkRefunded(ctx, paid.ID); err != nil {
			bookErr = err
		}

		if err := s.creditAll(ctx,
			credit{paid.OwnerID, ledger.PayeeTypeOwner, -paid.OwnerCut},
			credit{ledger.PlatformPayeeID, ledger.PayeeTypePlatform, -paid.PlatformCut},
		); err != nil && bookErr == nil {
			bookErr = err
		}

		msg = fmt.Sprintf("booking cancelled by facility owner, full refund of %.2f %s initiated",
			paid.Amount, paid.Currency)
	}

	s.releaseSlot(ctx, b.SlotID)

	return msg, bookErr
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListForUser(ctx context.Context, userID string, filter Filter) ([]*Booking, int, error) {
	filter.UserID = userID
	filter.OwnerID = ""
	return s.repo.List(ctx, filter)
}

func (s *service) ListForOwner(ctx context.Context, ownerID string, filter Filter) ([]*Booking, int, error) {
	filter.OwnerID = ownerID
	filter.UserID = ""
	return s.repo.List(ctx, filter)
}

func (s *service) HasConfirmedBooking(ctx context.Context, ownerID, playerID string) (bool, error) {
	return s.repo.HasConfirmedBetween(ctx, ownerID, playerID)
}

// paidPayment returns the booking's payment if it exists and is paid.
func (s *service) paidPayment(ctx context.Context, bookingID string) (*payment.Payment, error) {
	p, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if p.Status != payment.StatusPaid {
		return nil, nil
	}
	return p, nil
}

// issueRefund calls the gateway and never fails the cancellation: a refund
// failure is logged for manual reconciliation while the status change, slot
// release and ledger reversal proceed.
func (s *service) issueRefund(ctx context.Context, p *payment.Payment, amount float64) {
	if s.gateway == nil {
		s.logger.Warn("payment gateway not configured, skipping refund issuance",
			zap.String("payment_id", p.ID), zap.Float64("amount", amount))
		return
	}
	if amount <= 0 {
		// Zero-amount refunds are a no-op against the gateway; the
		// bookkeeping reversal still runs in the caller.
		return
	}
	if p.ExternalPaymentID == nil {
		s.logger.Error("paid payment has no captured external payment id",
			zap.String("payment_id", p.ID))
		return
	}

	if err := s.gateway.Refund(ctx, *p.ExternalPaymentID, amount); err != nil {
		s.logger.Error("refund issuance failed, continuing cancellation",
			zap.String("payment_id", p.ID),
			zap.Float64("amount", amount),
			zap.Error(err))
	}
}

type credit struct {
	payeeID   string
	payeeType ledger.PayeeType
	delta     float64
}

func (s *service) creditAll(ctx context.Context, credits ...credit) error {
	for _, c := range credits {
		if err := s.settle.Credit(ctx, c.payeeID, c.payeeType, c.delta); err != nil {
			return fmt.Errorf("ledger credit for %s/%s failed: %w", c.payeeType, c.payeeID, err)
		}
	}
	return nil
}

func (s *service) releaseSlot(ctx context.Context, slotID string) {
	if err := s.guard.Release(ctx, slotID); err != nil {
		s.logger.Error("slot release failed", zap.String("slot_id", slotID), zap.Error(err))
	}
}
