package resource

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "resource not found")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "invalid resource category")
)

// Category classifies an orderable resource.
type Category string

const (
	CategoryCreator   Category = "creator"
	CategoryStudio    Category = "studio"
	CategoryEquipment Category = "equipment"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCreator, CategoryStudio, CategoryEquipment:
		return true
	}
	return false
}

// Resource represents an orderable unit (a creator or a studio) owned by the catalog.
// Values are snapshots and are never mutated after they are fetched.
type Resource struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	Name        string    `json:"name"`
	HourlyRate  float64   `json:"hourly_rate"`
	IsAvailable bool      `json:"is_available"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// Filter defines parameters for listing resources.
type Filter struct {
	Category   Category
	ActiveOnly bool
}
