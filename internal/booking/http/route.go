package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/cancel", h.Cancel)
	}

	payments := g.Group("/payments")
	payments.Use(authMiddleware)
	{
		payments.POST("/verify", h.VerifyPayment)
	}

	owner := g.Group("/owner/bookings")
	owner.Use(authMiddleware, ownerMiddleware)
	{
		owner.GET("", h.OwnerList)
		owner.POST("/:id/cancel", h.OwnerCancel)
	}
}
