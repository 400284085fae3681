package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Gateway is the external payment provider boundary. The booking
// orchestrator receives an instance at construction; tests substitute a
// fake. A nil Gateway means "not configured".
type Gateway interface {
	// CreateOrder registers a payable order with the provider and returns
	// its id. receipt is the caller's idempotency/receipt reference.
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error)

	// Refund issues a refund against a captured payment.
	Refund(ctx context.Context, externalPaymentID string, amount float64) error

	// VerifySignature reports whether the client-submitted signature matches
	// the provider's signature over (orderID, externalPaymentID).
	VerifySignature(orderID, externalPaymentID, signature string) bool
}

// verifyHMAC recomputes the expected hex HMAC-SHA256 over
// "<orderID>|<externalPaymentID>" and compares in constant time.
func verifyHMAC(orderID, externalPaymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + externalPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
