package draft

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
)

// HasCreators reports whether any creator line is selected.
func (d *Draft) HasCreators() bool {
	return len(d.Lines) > 0
}

// CreatorIDs returns the ids of the selected creators in selection order.
func (d *Draft) CreatorIDs() []string {
	ids := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		ids[i] = l.Resource.ID
	}
	return ids
}

func (d *Draft) lineIndex(creatorID string) int {
	return slices.IndexFunc(d.Lines, func(l Line) bool { return l.Resource.ID == creatorID })
}

// AddCreator selects a creator with quantity 1. Selecting an already chosen creator is a no-op.
func (d *Draft) AddCreator(r resource.Resource) error {
	if r.Category != resource.CategoryCreator {
		return ErrNotCreator
	}
	if !r.IsAvailable {
		return ErrResourceUnavailable
	}
	if d.lineIndex(r.ID) >= 0 {
		return nil
	}
	d.Lines = append(d.Lines, Line{Resource: r, Quantity: 1})
	return nil
}

func (d *Draft) RemoveCreator(creatorID string) error {
	i := d.lineIndex(creatorID)
	if i < 0 {
		return ErrCreatorNotSelected
	}
	d.Lines = slices.Delete(d.Lines, i, i+1)
	return nil
}

func (d *Draft) SetCreatorQuantity(creatorID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	i := d.lineIndex(creatorID)
	if i < 0 {
		return ErrCreatorNotSelected
	}
	d.Lines[i].Quantity = qty
	return nil
}

// SetCreatorSample records which reference sample the creator should follow.
// An empty sampleID clears the choice.
func (d *Draft) SetCreatorSample(creatorID, sampleID string) error {
	if sampleID != "" {
		if _, err := uuid.Parse(sampleID); err != nil {
			return ErrInvalidSample
		}
	}
	i := d.lineIndex(creatorID)
	if i < 0 {
		return ErrCreatorNotSelected
	}
	d.Lines[i].SampleID = sampleID
	return nil
}

func (d *Draft) SetStudio(r resource.Resource) error {
	if r.Category != resource.CategoryStudio {
		return ErrNotStudio
	}
	if !r.IsAvailable {
		return ErrResourceUnavailable
	}
	d.Studio = &r
	return nil
}

func (d *Draft) ClearStudio() {
	d.Studio = nil
}

func (d *Draft) StudioID() string {
	if d.Studio == nil {
		return ""
	}
	return d.Studio.ID
}

func (d *Draft) SetStyle(style string) error {
	if !IsKnownStyle(style) {
		return ErrUnknownStyle
	}
	d.Style = style
	return nil
}

// SetGlobalQuantity sets the video count used when no creators are selected.
func (d *Draft) SetGlobalQuantity(qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	d.GlobalQuantity = qty
	return nil
}

func (d *Draft) SetDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	d.Date = date
	return nil
}

func (d *Draft) SetTime(label string) error {
	if !availability.IsSlotLabel(label) {
		return ErrInvalidTime
	}
	d.Time = label
	return nil
}

// Reset clears every field back to the initial draft.
func (d *Draft) Reset() {
	*d = New()
}

// Validate checks the field-level submission rules. Slot freedom is checked
// separately against the availability checker.
func (d *Draft) Validate() error {
	if d.Date == "" || d.Time == "" {
		return ErrScheduleMissing
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return ErrInvalidDate
	}
	if !availability.IsSlotLabel(d.Time) {
		return ErrInvalidTime
	}
	if !d.HasCreators() && d.GlobalQuantity < 1 {
		return ErrNoVideos
	}
	for _, l := range d.Lines {
		if l.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
