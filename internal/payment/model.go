package payment

import (
	"net/http"
	"time"

	"github.com/turfgrid/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "payment not found")
	ErrInvalidSignature   = apperror.New(http.StatusBadRequest, "invalid payment signature")
	ErrGatewayUnavailable = apperror.New(http.StatusServiceUnavailable, "payment gateway not configured")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusRefunded Status = "refunded"
)

// Payment is the monetary record tied to one booking (1:1 via booking id).
// PlatformCut and OwnerCut are set only on capture and always sum to Amount.
type Payment struct {
	ID                string
	BookingID         string
	UserID            string // payer
	OwnerID           string // payee facility owner
	Amount            float64
	Currency          string
	OrderID           string  // external gateway order id
	ExternalPaymentID *string // nil until captured
	Status            Status
	PlatformCut       float64
	OwnerCut          float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
