package booking

import (
	"net/http"
	"time"

	"github.com/turfgrid/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "booking not found")
	ErrNotCancellable = apperror.New(http.StatusConflict, "booking not found or already cancelled")
	ErrNotAuthorized  = apperror.New(http.StatusForbidden, "not authorized or booking not found")
	ErrNotPayable     = apperror.New(http.StatusConflict, "booking is no longer payable")
	ErrOrderFailed    = apperror.New(http.StatusBadGateway, "failed to create payment order")
)

type Status string

const (
	StatusPending          Status = "pending"
	StatusConfirmed        Status = "confirmed"
	StatusCancelledByUser  Status = "cancelled_by_user"
	StatusCancelledByOwner Status = "cancelled_by_owner"
)

// Booking is one reservation attempt for a slot. At most one booking per
// slot may be pending or confirmed at any time; rows are never deleted.
type Booking struct {
	ID        string
	SlotID    string
	UserID    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Projected from the slot for read endpoints.
	FacilityID string
	OwnerID    string
	StartTime  time.Time
	EndTime    time.Time
	Price      float64
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	OwnerID  string
	Status   string
	Page     int
	PageSize int
}

// OrderHandle is what the client needs to complete payment externally.
type OrderHandle struct {
	OrderID  string
	Amount   float64
	Currency string
}
