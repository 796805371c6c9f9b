package http

import (
	"time"

	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
)

// ListResourcesRequest defines query parameters for listing the catalog.
type ListResourcesRequest struct {
	Category   string `form:"category" binding:"omitempty,oneof=creator studio equipment"`
	ActiveOnly bool   `form:"active_only"`
}

type ResourceResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	HourlyRate  float64   `json:"hourly_rate"`
	IsAvailable bool      `json:"is_available"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResourceTag is the compact form embedded in other responses.
type ResourceTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewResponse(r *resource.Resource) ResourceResponse {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return ResourceResponse{
		ID:          r.ID,
		Category:    string(r.Category),
		Name:        r.Name,
		HourlyRate:  r.HourlyRate,
		IsAvailable: r.IsAvailable,
		Tags:        tags,
		CreatedAt:   r.CreatedAt,
	}
}
