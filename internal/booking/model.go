package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotTaken           = apperror.New(http.StatusConflict, "time slot already booked")
	ErrStudioRequired      = apperror.New(http.StatusBadRequest, "a studio must be selected")
	ErrStyleRequired       = apperror.New(http.StatusBadRequest, "a known video style must be selected")
	ErrResourceNotFound    = apperror.New(http.StatusNotFound, "selected resource no longer exists")
	ErrResourceMismatch    = apperror.New(http.StatusBadRequest, "selected resource has the wrong category")
	ErrResourceUnavailable = apperror.New(http.StatusConflict, "selected resource is no longer available")
	ErrStartTimePast       = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
	ErrAvailabilityUnknown = apperror.New(http.StatusServiceUnavailable, "could not verify slot availability, please retry")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Line is one creator of a submitted booking, priced at submission time.
type Line struct {
	CreatorID   string
	CreatorName string
	Quantity    int
	SampleID    string
	HourlyRate  float64
	Cost        float64
}

// Booking is a persisted, server-priced campaign request.
type Booking struct {
	ID             string
	UserID         string
	StudioID       string
	StudioName     string
	StudioRate     float64
	Style          string
	Date           string
	TimeLabel      string
	StartTime      time.Time
	VideoCount     int
	GlobalQuantity int
	EstimatedHours int
	LineCostsSum   float64
	StudioCost     float64
	PlatformFee    float64
	Total          float64
	Status         Status
	Lines          []Line
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Filter struct {
	UserID    string
	Status    string
	Page      int
	PageSize  int
	SortOrder string
}
