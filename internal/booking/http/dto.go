package http

import (
	"time"

	"github.com/turfgrid/turf-booking-backend/internal/booking"
	"github.com/turfgrid/turf-booking-backend/internal/pkg/request"
)

type CreateBookingBody struct {
	SlotID string `json:"slot_id" binding:"required,uuid"`
}

type VerifyPaymentBody struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled_by_user cancelled_by_owner"`
}

type BookingResponse struct {
	ID         string    `json:"id"`
	SlotID     string    `json:"slot_id"`
	FacilityID string    `json:"facility_id"`
	OwnerID    string    `json:"owner_id"`
	UserID     string    `json:"user_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Price      float64   `json:"price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		SlotID:     b.SlotID,
		FacilityID: b.FacilityID,
		OwnerID:    b.OwnerID,
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Price:      b.Price,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

type OrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateBookingResponse pairs the pending booking with the order handle the
// client needs to complete payment.
type CreateBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Order   OrderResponse   `json:"order"`
}
