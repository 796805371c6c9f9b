package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability routes. limiter throttles lookups per client.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, limiter gin.HandlerFunc) {
	group := g.Group("/availability")

	// === Authenticated Routes ===
	group.Use(authMiddleware, limiter)
	{
		group.GET("/:resource_id", h.Get)
	}
}
