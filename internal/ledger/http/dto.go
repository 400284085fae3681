package http

import (
	"time"

	"github.com/turfgrid/turf-booking-backend/internal/ledger"
)

// EarningsResponse is the shape of a payee's running balance.
type EarningsResponse struct {
	PayeeID   string    `json:"payee_id"`
	PayeeType string    `json:"payee_type"`
	Total     float64   `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewEarningsResponse(e *ledger.Entry) EarningsResponse {
	return EarningsResponse{
		PayeeID:   e.PayeeID,
		PayeeType: string(e.PayeeType),
		Total:     e.Total,
		UpdatedAt: e.UpdatedAt,
	}
}
