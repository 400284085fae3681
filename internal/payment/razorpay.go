package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway implements Gateway on top of the Razorpay REST API.
type RazorpayGateway struct {
	client *razorpay.Client
	secret string
}

// NewRazorpayGateway returns a configured gateway, or nil if credentials
// are absent so callers can treat the gateway as unconfigured.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	if keyID == "" || keySecret == "" {
		return nil
	}
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		secret: keySecret,
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error) {
	// Razorpay expects amounts in the currency's smallest unit.
	data := map[string]interface{}{
		"amount":   paise(amount),
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("create razorpay order failed: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", errors.New("razorpay order response missing id")
	}
	return orderID, nil
}

func (g *RazorpayGateway) Refund(ctx context.Context, externalPaymentID string, amount float64) error {
	// A zero-amount refund is a no-op against the provider; the caller's
	// bookkeeping still runs.
	if amount <= 0 {
		return nil
	}

	_, err := g.client.Payment.Refund(externalPaymentID, paise(amount), nil, nil)
	if err != nil {
		return fmt.Errorf("razorpay refund failed: %w", err)
	}
	return nil
}

func (g *RazorpayGateway) VerifySignature(orderID, externalPaymentID, signature string) bool {
	return verifyHMAC(orderID, externalPaymentID, signature, g.secret)
}

func paise(amount float64) int {
	return int(math.Round(amount * 100))
}
