// Package quote prices a campaign draft.
//
// Compute is shared by the builder preview and the booking submission so that
// both sides agree on every figure. All arithmetic runs in full float64
// precision; only Total is rounded, to cents.
package quote

import (
	"math"

	"github.com/nekogravitycat/creator-booking-backend/internal/draft"
)

const (
	// PlatformFeeRate is the commission charged on the creator and studio subtotal.
	PlatformFeeRate = 0.10

	// StudioHoursPerVideo is the studio time budgeted for each video.
	StudioHoursPerVideo = 0.5

	// MinStudioHours is the minimum studio booking, covering setup and teardown.
	MinStudioHours = 2
)

// LineCost is the price of one creator line.
type LineCost struct {
	ResourceID string  `json:"resource_id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
	Quantity   int     `json:"quantity"`
	Cost       float64 `json:"cost"`
}

type Quote struct {
	LineCosts       []LineCost `json:"line_costs"`
	LineCostsSum    float64    `json:"line_costs_sum"`
	StudioCost      float64    `json:"studio_cost"`
	EstimatedHours  int        `json:"estimated_hours"`
	PlatformFee     float64    `json:"platform_fee"`
	Total           float64    `json:"total"`
	TotalVideoCount int        `json:"total_video_count"`
}

// Compute derives the quote for d. It has no side effects.
//
// Without creators the draft is on the own-talent branch: production is quoted
// separately, so there are no line costs and the video count comes from
// GlobalQuantity.
func Compute(d draft.Draft) Quote {
	q := Quote{LineCosts: make([]LineCost, 0, len(d.Lines))}

	for _, l := range d.Lines {
		cost := l.Resource.HourlyRate * float64(l.Quantity)
		q.LineCosts = append(q.LineCosts, LineCost{
			ResourceID: l.Resource.ID,
			Name:       l.Resource.Name,
			HourlyRate: l.Resource.HourlyRate,
			Quantity:   l.Quantity,
			Cost:       cost,
		})
		q.LineCostsSum += cost
		q.TotalVideoCount += l.Quantity
	}
	if len(d.Lines) == 0 {
		q.TotalVideoCount = d.GlobalQuantity
	}

	if d.Studio != nil {
		q.EstimatedHours = EstimatedHours(q.TotalVideoCount)
		q.StudioCost = d.Studio.HourlyRate * float64(q.EstimatedHours)
	}

	subtotal := q.LineCostsSum + q.StudioCost
	q.PlatformFee = PlatformFeeRate * subtotal
	q.Total = RoundCents(subtotal + q.PlatformFee)
	return q
}

// EstimatedHours is the studio time for videos: half an hour each, at least MinStudioHours.
func EstimatedHours(videos int) int {
	hours := int(math.Ceil(float64(videos) * StudioHoursPerVideo))
	return max(MinStudioHours, hours)
}

// RoundCents rounds half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
