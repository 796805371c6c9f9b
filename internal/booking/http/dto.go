package http

import (
	"time"

	"github.com/nekogravitycat/creator-booking-backend/internal/booking"
	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/request"
	resHttp "github.com/nekogravitycat/creator-booking-backend/internal/resource/http"
)

// ListBookingsRequest defines query parameters for listing the caller's bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected completed"`
}

type LineResponse struct {
	Creator    resHttp.ResourceTag `json:"creator"`
	Quantity   int                 `json:"quantity"`
	SampleID   string              `json:"sample_id,omitempty"`
	HourlyRate float64             `json:"hourly_rate"`
	Cost       float64             `json:"cost"`
}

type BookingResponse struct {
	ID             string              `json:"id"`
	Studio         resHttp.ResourceTag `json:"studio"`
	Style          string              `json:"style"`
	Date           string              `json:"date"`
	Time           string              `json:"time"`
	StartTime      time.Time           `json:"start_time"`
	Lines          []LineResponse      `json:"lines"`
	VideoCount     int                 `json:"video_count"`
	EstimatedHours int                 `json:"estimated_hours"`
	StudioCost     float64             `json:"studio_cost"`
	PlatformFee    float64             `json:"platform_fee"`
	Total          float64             `json:"total"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	lines := make([]LineResponse, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = LineResponse{
			Creator:    resHttp.ResourceTag{ID: l.CreatorID, Name: l.CreatorName},
			Quantity:   l.Quantity,
			SampleID:   l.SampleID,
			HourlyRate: l.HourlyRate,
			Cost:       l.Cost,
		}
	}

	return BookingResponse{
		ID:             b.ID,
		Studio:         resHttp.ResourceTag{ID: b.StudioID, Name: b.StudioName},
		Style:          b.Style,
		Date:           b.Date,
		Time:           b.TimeLabel,
		StartTime:      b.StartTime,
		Lines:          lines,
		VideoCount:     b.VideoCount,
		EstimatedHours: b.EstimatedHours,
		StudioCost:     b.StudioCost,
		PlatformFee:    b.PlatformFee,
		Total:          b.Total,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
