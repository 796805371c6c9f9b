package draft

import (
	"net/http"
	"slices"

	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
	"github.com/nekogravitycat/creator-booking-backend/internal/wizard"
)

var (
	ErrNotCreator          = apperror.New(http.StatusBadRequest, "resource is not a creator")
	ErrNotStudio           = apperror.New(http.StatusBadRequest, "resource is not a studio")
	ErrResourceUnavailable = apperror.New(http.StatusConflict, "resource is not available for booking")
	ErrCreatorNotSelected  = apperror.New(http.StatusNotFound, "creator is not part of this draft")
	ErrInvalidQuantity     = apperror.New(http.StatusBadRequest, "quantity must be at least 1")
	ErrInvalidSample       = apperror.New(http.StatusBadRequest, "invalid reference sample id")
	ErrUnknownStyle        = apperror.New(http.StatusBadRequest, "unknown video style")
	ErrInvalidDate         = apperror.New(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrInvalidTime         = apperror.New(http.StatusBadRequest, "time is not one of the offered slots")
	ErrScheduleMissing     = apperror.New(http.StatusBadRequest, "date and time are required")
	ErrNoVideos            = apperror.New(http.StatusBadRequest, "select at least one creator or set a video quantity")
)

// DateLayout is the calendar date format used throughout the builder.
const DateLayout = "2006-01-02"

// Styles lists the video styles a campaign can be shot in.
var Styles = []string{
	"unboxing",
	"testimonial",
	"tutorial",
	"lifestyle",
	"review",
	"haul",
}

func IsKnownStyle(style string) bool {
	return slices.Contains(Styles, style)
}

// Line is one chosen creator with the number of videos ordered from them.
type Line struct {
	Resource resource.Resource `json:"resource"`
	Quantity int               `json:"quantity"`
	SampleID string            `json:"sample_id,omitempty"`
}

// Draft is the in-progress booking. Lines and Studio hold resource snapshots
// taken when they were selected; the server re-reads rates on submission.
type Draft struct {
	Lines          []Line             `json:"lines"`
	Studio         *resource.Resource `json:"studio,omitempty"`
	GlobalQuantity int                `json:"global_quantity"`
	Style          string             `json:"style,omitempty"`
	Date           string             `json:"date,omitempty"`
	Time           string             `json:"time,omitempty"`
}

// New returns the initial empty draft.
func New() Draft {
	return Draft{
		Lines:          []Line{},
		GlobalQuantity: 1,
	}
}

// Availability caches the last booked-slot lookup for the chosen studio and date.
// Seq tags each lookup so that an older response never overwrites a newer one.
type Availability struct {
	Seq        int64    `json:"seq"`
	ResourceID string   `json:"resource_id,omitempty"`
	Date       string   `json:"date,omitempty"`
	Booked     []string `json:"booked,omitempty"`
	Loaded     bool     `json:"loaded"`
}

// Matches reports whether the cached lookup belongs to the given studio and date.
func (a Availability) Matches(resourceID, date string) bool {
	return a.Loaded && a.ResourceID == resourceID && a.Date == date
}

// Snapshot is everything persisted for one builder session.
type Snapshot struct {
	Draft        Draft        `json:"draft"`
	Wizard       wizard.State `json:"wizard"`
	Availability Availability `json:"availability"`
}

// NewSnapshot returns the state of a freshly started builder.
func NewSnapshot() Snapshot {
	return Snapshot{
		Draft:  New(),
		Wizard: wizard.New().State(),
	}
}
