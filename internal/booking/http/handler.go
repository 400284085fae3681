package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/turfgrid/turf-booking-backend/internal/auth"
	"github.com/turfgrid/turf-booking-backend/internal/booking"
	"github.com/turfgrid/turf-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	b, order, err := h.service.RequestBooking(c.Request.Context(), userID, body.SlotID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{
		Booking: NewBookingResponse(b),
		Order: OrderResponse{
			OrderID:  order.OrderID,
			Amount:   order.Amount,
			Currency: order.Currency,
		},
	})
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var body VerifyPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	err := h.service.VerifyPayment(c.Request.Context(), body.OrderID, body.PaymentID, body.Signature)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)

	msg, err := h.service.CancelByPlayer(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, msg)
}

func (h *Handler) OwnerCancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	ownerID := auth.GetUserID(c)

	msg, err := h.service.CancelByOwner(c.Request.Context(), ownerID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, msg)
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Access check: the booker or the facility owner.
	userID := auth.GetUserID(c)
	if userID != b.UserID && userID != b.OwnerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}

	userID := auth.GetUserID(c)

	bookings, total, err := h.service.ListForUser(c.Request.Context(), userID, booking.Filter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, pageOf(bookings, req.Page, req.PageSize, total))
}

func (h *Handler) OwnerList(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}

	ownerID := auth.GetUserID(c)

	bookings, total, err := h.service.ListForOwner(c.Request.Context(), ownerID, booking.Filter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, pageOf(bookings, req.Page, req.PageSize, total))
}

func bindList(c *gin.Context) (*ListBookingsRequest, bool) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return nil, false
	}
	req.Normalize()
	return &req, true
}

func pageOf(bookings []*booking.Booking, page, pageSize, total int) response.PageResponse[BookingResponse] {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return response.NewPageResponse(items, page, pageSize, total)
}
