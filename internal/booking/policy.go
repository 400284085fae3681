package booking

import "math"

// Policy holds the marketplace settlement numbers. They are injected from
// configuration so the split is never buried in the engine.
type Policy struct {
	// PlatformFeeRate is the platform's share of every captured payment.
	PlatformFeeRate float64

	// Fixed penalty charged to a player who cancels a paid booking, and how
	// it is divided between the facility owner and the platform.
	PenaltyTotal    float64
	PenaltyOwner    float64
	PenaltyPlatform float64
}

// DefaultPolicy returns the product defaults: 10% platform cut, 50 penalty
// split 40 to the owner and 10 to the platform.
func DefaultPolicy() Policy {
	return Policy{
		PlatformFeeRate: 0.10,
		PenaltyTotal:    50,
		PenaltyOwner:    40,
		PenaltyPlatform: 10,
	}
}

// Split computes the revenue split for a captured payment. Rounding is
// absorbed into the owner cut so the two always sum exactly to amount.
func (p Policy) Split(amount float64) (platformCut, ownerCut float64) {
	platformCut = round2(amount * p.PlatformFeeRate)
	ownerCut = round2(amount - platformCut)
	return platformCut, ownerCut
}

// RefundAmount is what the player gets back after the penalty: never
// negative, even when the penalty exceeds the payment.
func (p Policy) RefundAmount(amount float64) float64 {
	return round2(math.Max(0, amount-p.PenaltyTotal))
}

// ProportionalReversal computes how much of the originally credited cuts to
// take back for a partial refund: the refunded fraction of each cut.
func (p Policy) ProportionalReversal(platformCut, ownerCut, amount, refundAmount float64) (platformReversal, ownerReversal float64) {
	if amount <= 0 {
		return 0, 0
	}
	portion := refundAmount / amount
	return round2(platformCut * portion), round2(ownerCut * portion)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
