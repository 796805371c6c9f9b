package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the campaign builder routes. The session is the
// authenticated user, so every route requires auth. limiter guards the calls
// that reach the booking ledger.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, limiter gin.HandlerFunc) {
	group := g.Group("/campaign-builder")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.Get)
		group.DELETE("", h.Reset)

		group.POST("/setup", h.ChooseSetup)
		group.POST("/next", h.Next)
		group.POST("/back", h.Back)

		group.POST("/creators", h.AddCreator)
		group.PATCH("/creators/:id", h.UpdateCreator)
		group.DELETE("/creators/:id", h.RemoveCreator)

		group.PUT("/studio", h.SetStudio)
		group.DELETE("/studio", h.ClearStudio)
		group.PUT("/style", h.SetStyle)
		group.PUT("/quantity", h.SetQuantity)
		group.PUT("/date", h.SetDate)
		group.PUT("/time", h.SetTime)

		group.POST("/availability/refresh", limiter, h.RefreshAvailability)
		group.POST("/submit", limiter, h.Submit)
	}
}
