package builder

import (
	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
	"github.com/nekogravitycat/creator-booking-backend/internal/draft"
	"github.com/nekogravitycat/creator-booking-backend/internal/quote"
	"github.com/nekogravitycat/creator-booking-backend/internal/wizard"
)

// View is what the builder screen renders after every action.
type View struct {
	Step               wizard.Step
	ActiveSteps        []wizard.Step
	CanAdvance         bool
	IsFirst            bool
	IsLast             bool
	Draft              draft.Draft
	Quote              quote.Quote
	BookedSlots        []string
	Slots              []availability.Slot
	AvailabilityLoaded bool
}

func newView(snap draft.Snapshot) *View {
	seq := wizard.Restore(snap.Wizard)
	booked := bookedFor(snap)
	if booked == nil {
		booked = []string{}
	}

	return &View{
		Step:               seq.Current(),
		ActiveSteps:        seq.ActiveSteps(),
		CanAdvance:         CanAdvance(seq.Current(), snap),
		IsFirst:            seq.IsFirst(),
		IsLast:             seq.IsLast(),
		Draft:              snap.Draft,
		Quote:              quote.Compute(snap.Draft),
		BookedSlots:        booked,
		Slots:              availability.Slots(booked),
		AvailabilityLoaded: snap.Availability.Matches(snap.Draft.StudioID(), snap.Draft.Date),
	}
}
