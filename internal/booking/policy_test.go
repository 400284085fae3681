package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicySplit(t *testing.T) {
	p := DefaultPolicy()

	t.Run("ten percent platform cut", func(t *testing.T) {
		platformCut, ownerCut := p.Split(1000)
		assert.Equal(t, 100.0, platformCut)
		assert.Equal(t, 900.0, ownerCut)
	})

	t.Run("rounding absorbed into owner cut", func(t *testing.T) {
		// 10% of 999.99 is 99.999; the platform cut rounds to 100.00 and the
		// owner cut takes the remainder so the sum stays exact.
		platformCut, ownerCut := p.Split(999.99)
		assert.Equal(t, 100.0, platformCut)
		assert.Equal(t, 899.99, ownerCut)
	})

	t.Run("cut conservation", func(t *testing.T) {
		for _, amount := range []float64{1, 49.5, 50, 100.01, 333.33, 1000, 12345.67} {
			platformCut, ownerCut := p.Split(amount)
			assert.InDelta(t, amount, platformCut+ownerCut, 1e-9, "amount %v", amount)
		}
	})
}

func TestPolicyRefundAmount(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, 950.0, p.RefundAmount(1000))
	assert.Equal(t, 0.0, p.RefundAmount(50))

	// Penalty exceeding the payment never produces a negative refund.
	assert.Equal(t, 0.0, p.RefundAmount(40))
}

func TestPolicyProportionalReversal(t *testing.T) {
	p := DefaultPolicy()

	t.Run("refunded fraction of each cut", func(t *testing.T) {
		// 1000 paid, cuts 100/900, refund 950 -> 95% of each cut reversed.
		platformRev, ownerRev := p.ProportionalReversal(100, 900, 1000, 950)
		assert.Equal(t, 95.0, platformRev)
		assert.Equal(t, 855.0, ownerRev)
	})

	t.Run("zero refund reverses nothing", func(t *testing.T) {
		platformRev, ownerRev := p.ProportionalReversal(4, 36, 40, 0)
		assert.Equal(t, 0.0, platformRev)
		assert.Equal(t, 0.0, ownerRev)
	})

	t.Run("zero amount guards division", func(t *testing.T) {
		platformRev, ownerRev := p.ProportionalReversal(0, 0, 0, 0)
		assert.Equal(t, 0.0, platformRev)
		assert.Equal(t, 0.0, ownerRev)
	})
}
