package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turfgrid/turf-booking-backend/internal/auth"
	"github.com/turfgrid/turf-booking-backend/internal/ledger"
	"github.com/turfgrid/turf-booking-backend/internal/pkg/response"
)

type Handler struct {
	service ledger.Service
}

func NewHandler(service ledger.Service) *Handler {
	return &Handler{service: service}
}

// OwnerEarnings returns the calling owner's running earnings total.
func (h *Handler) OwnerEarnings(c *gin.Context) {
	ownerID := auth.GetUserID(c)

	entry, err := h.service.Balance(c.Request.Context(), ownerID, ledger.PayeeTypeOwner)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEarningsResponse(entry))
}
