package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
	"github.com/nekogravitycat/creator-booking-backend/internal/draft"
	"github.com/nekogravitycat/creator-booking-backend/internal/quote"
	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
)

type Service interface {
	// Submit prices the draft from current catalog rates, re-checks the slot and
	// persists the booking. Any price the client computed is ignored.
	Submit(ctx context.Context, userID string, d draft.Draft) (*Booking, error)
	GetByID(ctx context.Context, id string, requesterID string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo       Repository
	resService resource.Service
	avail      availability.Service
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repo Repository, resService resource.Service, avail availability.Service, logger *zap.Logger) Service {
	return &service{
		repo:       repo,
		resService: resService,
		avail:      avail,
		logger:     logger,
		now:        time.Now,
	}
}

// currentResource reloads a resource and checks it can still be booked as category.
func (s *service) currentResource(ctx context.Context, id string, category resource.Category) (*resource.Resource, error) {
	res, err := s.resService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if res.Category != category {
		return nil, ErrResourceMismatch
	}
	if !res.IsAvailable {
		return nil, ErrResourceUnavailable
	}
	return res, nil
}

// reprice rebuilds the draft with resources as they are in the catalog right now.
func (s *service) reprice(ctx context.Context, d draft.Draft) (draft.Draft, error) {
	priced := draft.New()
	priced.GlobalQuantity = d.GlobalQuantity
	priced.Style = d.Style
	priced.Date = d.Date
	priced.Time = d.Time

	for _, l := range d.Lines {
		res, err := s.currentResource(ctx, l.Resource.ID, resource.CategoryCreator)
		if err != nil {
			return draft.Draft{}, err
		}
		priced.Lines = append(priced.Lines, draft.Line{Resource: *res, Quantity: l.Quantity, SampleID: l.SampleID})
	}

	studio, err := s.currentResource(ctx, d.Studio.ID, resource.CategoryStudio)
	if err != nil {
		return draft.Draft{}, err
	}
	priced.Studio = studio

	return priced, nil
}

func (s *service) Submit(ctx context.Context, userID string, d draft.Draft) (*Booking, error) {
	// 1. Validate the draft before touching any collaborator
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.Studio == nil {
		return nil, ErrStudioRequired
	}
	if !draft.IsKnownStyle(d.Style) {
		return nil, ErrStyleRequired
	}

	start, err := availability.SlotStart(d.Date, d.Time)
	if err != nil {
		return nil, draft.ErrInvalidTime
	}
	if !start.After(s.now().UTC()) {
		return nil, ErrStartTimePast
	}

	// 2. Recompute the price from current rates
	priced, err := s.reprice(ctx, d)
	if err != nil {
		return nil, err
	}
	q := quote.Compute(priced)

	// 3. Re-check the slot. The unique index catches races past this point.
	booked, err := s.avail.IsBooked(ctx, priced.Studio.ID, priced.Date, priced.Time)
	if err != nil {
		return nil, ErrAvailabilityUnknown.WithCause(err)
	}
	if booked {
		return nil, ErrSlotTaken
	}

	// 4. Persist
	b := &Booking{
		UserID:         userID,
		StudioID:       priced.Studio.ID,
		StudioName:     priced.Studio.Name,
		StudioRate:     priced.Studio.HourlyRate,
		Style:          priced.Style,
		Date:           priced.Date,
		TimeLabel:      priced.Time,
		StartTime:      start,
		VideoCount:     q.TotalVideoCount,
		GlobalQuantity: priced.GlobalQuantity,
		EstimatedHours: q.EstimatedHours,
		LineCostsSum:   q.LineCostsSum,
		StudioCost:     q.StudioCost,
		PlatformFee:    q.PlatformFee,
		Total:          q.Total,
		Status:         StatusPending,
	}
	for i, l := range priced.Lines {
		b.Lines = append(b.Lines, Line{
			CreatorID:   l.Resource.ID,
			CreatorName: l.Resource.Name,
			Quantity:    l.Quantity,
			SampleID:    l.SampleID,
			HourlyRate:  l.Resource.HourlyRate,
			Cost:        q.LineCosts[i].Cost,
		})
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking submitted",
		zap.String("bookingID", b.ID),
		zap.String("userID", userID),
		zap.String("studioID", b.StudioID),
		zap.Time("startTime", b.StartTime),
		zap.Float64("total", b.Total),
	)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string, requesterID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}
