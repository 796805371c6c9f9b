package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Get returns the booked slots of a resource for one day.
// Lookup failures degrade to an empty booked list; submission re-checks.
func (h *Handler) Get(c *gin.Context) {
	var uri GetAvailabilityRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var query GetAvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	booked := h.service.GetBookedSlots(c.Request.Context(), uri.ResourceID, query.Date)

	c.JSON(http.StatusOK, AvailabilityResponse{
		ResourceID: uri.ResourceID,
		Date:       query.Date,
		Booked:     booked,
		Slots:      availability.Slots(booked),
	})
}
