package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turfgrid/turf-booking-backend/internal/auth"
	"github.com/turfgrid/turf-booking-backend/internal/conversation"
	"github.com/turfgrid/turf-booking-backend/internal/pkg/response"
)

type Handler struct {
	service conversation.Service
}

func NewHandler(service conversation.Service) *Handler {
	return &Handler{service: service}
}

// Eligibility reports whether a conversation between the owner and player
// may be created. Callable only by one of the two parties.
func (h *Handler) Eligibility(c *gin.Context) {
	var req EligibilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID != req.OwnerID && userID != req.PlayerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	eligible, err := h.service.Eligible(c.Request.Context(), req.OwnerID, req.PlayerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, EligibilityResponse{Eligible: eligible})
}
