package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/resources")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)    // List resources by category
		group.GET("/:id", h.Get) // Get resource details
	}
}
