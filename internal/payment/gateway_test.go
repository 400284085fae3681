package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, externalPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + externalPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyHMAC(t *testing.T) {
	const secret = "key-secret"

	good := sign(secret, "order_123", "pay_456")
	assert.True(t, verifyHMAC("order_123", "pay_456", good, secret))

	t.Run("tampered signature", func(t *testing.T) {
		assert.False(t, verifyHMAC("order_123", "pay_456", good[:len(good)-1]+"0", secret))
	})

	t.Run("signature for different order", func(t *testing.T) {
		other := sign(secret, "order_999", "pay_456")
		assert.False(t, verifyHMAC("order_123", "pay_456", other, secret))
	})

	t.Run("swapped message parts", func(t *testing.T) {
		swapped := sign(secret, "pay_456", "order_123")
		assert.False(t, verifyHMAC("order_123", "pay_456", swapped, secret))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, verifyHMAC("order_123", "pay_456", sign("other-secret", "order_123", "pay_456"), secret))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, verifyHMAC("order_123", "pay_456", "", secret))
	})
}

func TestRazorpayGatewayConstruction(t *testing.T) {
	assert.Nil(t, NewRazorpayGateway("", ""))
	assert.Nil(t, NewRazorpayGateway("rzp_test_key", ""))
	assert.Nil(t, NewRazorpayGateway("", "secret"))

	g := NewRazorpayGateway("rzp_test_key", "secret")
	assert.NotNil(t, g)

	// VerifySignature needs only the secret, no network.
	assert.True(t, g.VerifySignature("order_123", "pay_456", sign("secret", "order_123", "pay_456")))
	assert.False(t, g.VerifySignature("order_123", "pay_456", "not-a-signature"))
}

func TestPaise(t *testing.T) {
	assert.Equal(t, 100000, paise(1000))
	assert.Equal(t, 95000, paise(950))
	assert.Equal(t, 1, paise(0.01))
	assert.Equal(t, 0, paise(0))

	// Float noise at the second decimal must not drop a unit.
	assert.Equal(t, 5799, paise(57.99))
	assert.Equal(t, 11, paise(0.1+0.01))
}
