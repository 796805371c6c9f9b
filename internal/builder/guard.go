package builder

import (
	"slices"

	"github.com/nekogravitycat/creator-booking-backend/internal/draft"
	"github.com/nekogravitycat/creator-booking-backend/internal/wizard"
)

// CanAdvance reports whether step's requirements are met by the snapshot.
// Setup is left only through ChooseSetup and review is terminal.
func CanAdvance(step wizard.Step, snap draft.Snapshot) bool {
	d := snap.Draft
	switch step {
	case wizard.StepTalent:
		return d.HasCreators()
	case wizard.StepStyle:
		return d.Style != ""
	case wizard.StepStudio:
		return d.Studio != nil
	case wizard.StepBrief:
		return true
	case wizard.StepSchedule:
		if d.Date == "" || d.Time == "" {
			return false
		}
		return !slices.Contains(bookedFor(snap), d.Time)
	}
	return false
}

// bookedFor returns the cached booked labels if they belong to the draft's studio and date.
func bookedFor(snap draft.Snapshot) []string {
	if !snap.Availability.Matches(snap.Draft.StudioID(), snap.Draft.Date) {
		return nil
	}
	return snap.Availability.Booked
}

// availabilityStale reports whether the cache does not cover the current studio and date.
func availabilityStale(snap draft.Snapshot) bool {
	d := snap.Draft
	if d.StudioID() == "" || d.Date == "" {
		return false
	}
	return !snap.Availability.Matches(d.StudioID(), d.Date)
}

// firstIncomplete returns the first active step, other than setup and review,
// whose requirements are not met.
func firstIncomplete(seq *wizard.Sequencer, snap draft.Snapshot) (wizard.Step, bool) {
	for _, step := range seq.ActiveSteps() {
		if step == wizard.StepSetup || step == wizard.StepReview {
			continue
		}
		if !CanAdvance(step, snap) {
			return step, true
		}
	}
	return "", false
}
