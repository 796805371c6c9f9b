package http

import (
	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
)

type GetAvailabilityRequest struct {
	ResourceID string `uri:"resource_id" binding:"required,uuid"`
}

type GetAvailabilityQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

type AvailabilityResponse struct {
	ResourceID string              `json:"resource_id"`
	Date       string              `json:"date"`
	Booked     []string            `json:"booked"`
	Slots      []availability.Slot `json:"slots"`
}
