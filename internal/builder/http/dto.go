package http

import (
	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
	"github.com/nekogravitycat/creator-booking-backend/internal/builder"
	"github.com/nekogravitycat/creator-booking-backend/internal/draft"
	"github.com/nekogravitycat/creator-booking-backend/internal/quote"
	"github.com/nekogravitycat/creator-booking-backend/internal/wizard"
)

// ==== Requests ====

type ChooseSetupRequest struct {
	OwnTalent *bool `json:"own_talent" binding:"required"`
}

type AddCreatorRequest struct {
	CreatorID string `json:"creator_id" binding:"required,uuid"`
}

type CreatorURIRequest struct {
	CreatorID string `uri:"id" binding:"required,uuid"`
}

// UpdateCreatorRequest changes one creator line. Nil fields are left untouched.
// An empty sample_id clears the reference sample.
type UpdateCreatorRequest struct {
	Quantity *int    `json:"quantity" binding:"omitempty,min=1"`
	SampleID *string `json:"sample_id"`
}

type SetStudioRequest struct {
	StudioID string `json:"studio_id" binding:"required,uuid"`
}

type SetStyleRequest struct {
	Style string `json:"style" binding:"required"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type SetDateRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

type SetTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// ==== Responses ====

type ResourceResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
}

type LineResponse struct {
	Creator  ResourceResponse `json:"creator"`
	Quantity int              `json:"quantity"`
	SampleID string           `json:"sample_id,omitempty"`
	Cost     float64          `json:"cost"`
}

type DraftResponse struct {
	Lines          []LineResponse    `json:"lines"`
	Studio         *ResourceResponse `json:"studio"`
	GlobalQuantity int               `json:"global_quantity"`
	Style          string            `json:"style"`
	Date           string            `json:"date"`
	Time           string            `json:"time"`
}

type QuoteResponse struct {
	LineCostsSum    float64 `json:"line_costs_sum"`
	StudioCost      float64 `json:"studio_cost"`
	EstimatedHours  int     `json:"estimated_hours"`
	PlatformFee     float64 `json:"platform_fee"`
	Total           float64 `json:"total"`
	TotalVideoCount int     `json:"total_video_count"`
}

type ViewResponse struct {
	Step               wizard.Step         `json:"step"`
	ActiveSteps        []wizard.Step       `json:"active_steps"`
	CanAdvance         bool                `json:"can_advance"`
	IsFirst            bool                `json:"is_first"`
	IsLast             bool                `json:"is_last"`
	Draft              DraftResponse       `json:"draft"`
	Quote              QuoteResponse       `json:"quote"`
	Styles             []string            `json:"styles"`
	BookedSlots        []string            `json:"booked_slots"`
	Slots              []availability.Slot `json:"slots"`
	AvailabilityLoaded bool                `json:"availability_loaded"`
}

type SubmitResponse struct {
	BookingID string  `json:"booking_id"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
}

func newQuoteResponse(q quote.Quote) QuoteResponse {
	return QuoteResponse{
		LineCostsSum:    q.LineCostsSum,
		StudioCost:      q.StudioCost,
		EstimatedHours:  q.EstimatedHours,
		PlatformFee:     q.PlatformFee,
		Total:           q.Total,
		TotalVideoCount: q.TotalVideoCount,
	}
}

func newDraftResponse(d draft.Draft, q quote.Quote) DraftResponse {
	lines := make([]LineResponse, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = LineResponse{
			Creator: ResourceResponse{
				ID:         l.Resource.ID,
				Name:       l.Resource.Name,
				HourlyRate: l.Resource.HourlyRate,
			},
			Quantity: l.Quantity,
			SampleID: l.SampleID,
			Cost:     q.LineCosts[i].Cost,
		}
	}

	resp := DraftResponse{
		Lines:          lines,
		GlobalQuantity: d.GlobalQuantity,
		Style:          d.Style,
		Date:           d.Date,
		Time:           d.Time,
	}
	if d.Studio != nil {
		resp.Studio = &ResourceResponse{
			ID:         d.Studio.ID,
			Name:       d.Studio.Name,
			HourlyRate: d.Studio.HourlyRate,
		}
	}
	return resp
}

func NewViewResponse(v *builder.View) ViewResponse {
	return ViewResponse{
		Step:               v.Step,
		ActiveSteps:        v.ActiveSteps,
		CanAdvance:         v.CanAdvance,
		IsFirst:            v.IsFirst,
		IsLast:             v.IsLast,
		Draft:              newDraftResponse(v.Draft, v.Quote),
		Quote:              newQuoteResponse(v.Quote),
		Styles:             draft.Styles,
		BookedSlots:        v.BookedSlots,
		Slots:              v.Slots,
		AvailabilityLoaded: v.AvailabilityLoaded,
	}
}
