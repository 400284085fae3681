package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	group := g.Group("/owner/earnings")

	group.Use(authMiddleware, ownerMiddleware)
	{
		group.GET("", h.OwnerEarnings)
	}
}
