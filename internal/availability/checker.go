package availability

import (
	"context"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidResource = apperror.New(http.StatusBadRequest, "invalid resource id")
	ErrInvalidDate     = apperror.New(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrInvalidSlot     = apperror.New(http.StatusBadRequest, "time is not one of the offered slots")
)

// Service answers which slots of a day are already taken for a resource.
type Service interface {
	// GetBookedSlots returns booked labels for the day, ordered by start time.
	// It never fails: invalid input or backend errors yield an empty result,
	// so callers must re-check with IsBooked before committing.
	GetBookedSlots(ctx context.Context, resourceID, date string) []string

	// BookedSlots is the strict form of GetBookedSlots.
	BookedSlots(ctx context.Context, resourceID, date string) ([]string, error)

	// IsBooked reports whether label is taken for the resource on date.
	IsBooked(ctx context.Context, resourceID, date, label string) (bool, error)
}

type checker struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &checker{repo: repo, logger: logger}
}

func (c *checker) GetBookedSlots(ctx context.Context, resourceID, date string) []string {
	labels, err := c.BookedSlots(ctx, resourceID, date)
	if err != nil {
		c.logger.Warn("availability lookup failed, treating day as free",
			zap.String("resourceID", resourceID),
			zap.String("date", date),
			zap.Error(err),
		)
		return []string{}
	}
	return labels
}

func (c *checker) BookedSlots(ctx context.Context, resourceID, date string) ([]string, error) {
	if _, err := uuid.Parse(resourceID); err != nil {
		return nil, ErrInvalidResource
	}
	from, to, err := DayWindow(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	starts, err := c.repo.BookedStarts(ctx, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	return toLabels(starts), nil
}

func (c *checker) IsBooked(ctx context.Context, resourceID, date, label string) (bool, error) {
	if !IsSlotLabel(label) {
		return false, ErrInvalidSlot
	}
	labels, err := c.BookedSlots(ctx, resourceID, date)
	if err != nil {
		return false, err
	}
	return slices.Contains(labels, label), nil
}
