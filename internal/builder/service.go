package builder

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
	"github.com/nekogravitycat/creator-booking-backend/internal/booking"
	"github.com/nekogravitycat/creator-booking-backend/internal/draft"
	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
	"github.com/nekogravitycat/creator-booking-backend/internal/wizard"
)

var (
	ErrStepIncomplete  = apperror.New(http.StatusUnprocessableEntity, "complete the current step before continuing")
	ErrTalentSkipped   = apperror.New(http.StatusConflict, "talent selection is not part of this session")
	ErrSlotUnavailable = apperror.New(http.StatusConflict, "time slot already booked")
	ErrCreatorsChosen  = apperror.New(http.StatusConflict, "remove the selected creators before choosing own talent")
	ErrNotOnReview     = apperror.New(http.StatusConflict, "booking can only be submitted from the review step")
	ErrSubmitFailed    = apperror.New(http.StatusInternalServerError, "could not submit booking, please try again")
)

// Service drives one user's campaign builder session. Every action loads the
// persisted snapshot, applies a single change and stores it again.
type Service interface {
	Get(ctx context.Context, session string) (*View, error)
	Reset(ctx context.Context, session string) (*View, error)

	ChooseSetup(ctx context.Context, session string, ownTalent bool) (*View, error)
	Next(ctx context.Context, session string) (*View, error)
	Back(ctx context.Context, session string) (*View, error)

	AddCreator(ctx context.Context, session, creatorID string) (*View, error)
	RemoveCreator(ctx context.Context, session, creatorID string) (*View, error)
	SetCreatorQuantity(ctx context.Context, session, creatorID string, qty int) (*View, error)
	SetCreatorSample(ctx context.Context, session, creatorID, sampleID string) (*View, error)
	// UpdateCreator applies the non-nil changes to one line. Nothing is saved
	// unless every change is valid.
	UpdateCreator(ctx context.Context, session, creatorID string, qty *int, sampleID *string) (*View, error)
	SetStudio(ctx context.Context, session, studioID string) (*View, error)
	ClearStudio(ctx context.Context, session string) (*View, error)
	SetStyle(ctx context.Context, session, style string) (*View, error)
	SetGlobalQuantity(ctx context.Context, session string, qty int) (*View, error)
	SetDate(ctx context.Context, session, date string) (*View, error)
	SetTime(ctx context.Context, session, label string) (*View, error)

	// RefreshAvailability reloads booked slots for the draft's studio and date.
	RefreshAvailability(ctx context.Context, session string) (*View, error)

	// Submit persists the draft for userID. On success the session is cleared;
	// on failure the draft is kept so the user can retry or go back.
	Submit(ctx context.Context, session, userID string) (*booking.Booking, error)
}

type service struct {
	store    draft.Store
	catalog  resource.Service
	avail    availability.Service
	bookings booking.Service
	logger   *zap.Logger
	locks    *sessionLocks
}

func NewService(
	store draft.Store,
	catalog resource.Service,
	avail availability.Service,
	bookings booking.Service,
	logger *zap.Logger,
) Service {
	return &service{
		store:    store,
		catalog:  catalog,
		avail:    avail,
		bookings: bookings,
		logger:   logger,
		locks:    newSessionLocks(),
	}
}

// mutation changes a loaded snapshot. The sequencer is restored from and written
// back to snap.Wizard around the call.
type mutation func(snap *draft.Snapshot, seq *wizard.Sequencer) error

// update runs fn on the session's snapshot under the session lock and persists the result.
// If fn fails nothing is written.
func (s *service) update(ctx context.Context, session string, fn mutation) (draft.Snapshot, error) {
	unlock := s.locks.lock(session)
	defer unlock()

	snap, err := s.store.Load(ctx, session)
	if err != nil {
		return draft.Snapshot{}, err
	}
	seq := wizard.Restore(snap.Wizard)

	if err := fn(&snap, seq); err != nil {
		return draft.Snapshot{}, err
	}

	snap.Wizard = seq.State()
	if err := s.store.Save(ctx, session, snap); err != nil {
		return draft.Snapshot{}, err
	}
	return snap, nil
}

// updateView is update followed by an availability refresh when the studio or
// date changed.
func (s *service) updateView(ctx context.Context, session string, fn mutation) (*View, error) {
	snap, err := s.update(ctx, session, fn)
	if err != nil {
		return nil, err
	}
	if availabilityStale(snap) {
		return s.RefreshAvailability(ctx, session)
	}
	return newView(snap), nil
}

func (s *service) Get(ctx context.Context, session string) (*View, error) {
	snap, err := s.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	return newView(snap), nil
}

func (s *service) Reset(ctx context.Context, session string) (*View, error) {
	unlock := s.locks.lock(session)
	defer unlock()

	if err := s.store.Delete(ctx, session); err != nil {
		return nil, err
	}
	return newView(draft.NewSnapshot()), nil
}

func (s *service) ChooseSetup(ctx context.Context, session string, ownTalent bool) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		// Skipped talent must not leave priced creator lines behind.
		if ownTalent && seq.Current() == wizard.StepSetup && snap.Draft.HasCreators() {
			return ErrCreatorsChosen
		}
		return seq.ChooseSetup(ownTalent)
	})
}

func (s *service) Next(ctx context.Context, session string) (*View, error) {
	snap, err := s.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	// The schedule guard needs booked slots for the current studio and date.
	if wizard.Restore(snap.Wizard).Current() == wizard.StepSchedule && availabilityStale(snap) {
		if _, err := s.RefreshAvailability(ctx, session); err != nil {
			return nil, err
		}
	}

	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		if seq.IsLast() {
			return nil
		}
		if !CanAdvance(seq.Current(), *snap) {
			return ErrStepIncomplete
		}
		seq.Next()
		return nil
	})
}

func (s *service) Back(ctx context.Context, session string) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		seq.Back()
		return nil
	})
}

// lookup fetches a resource from the catalog outside of any session lock.
func (s *service) lookup(ctx context.Context, id string) (*resource.Resource, error) {
	res, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) AddCreator(ctx context.Context, session, creatorID string) (*View, error) {
	res, err := s.lookup(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		if seq.IsSkipped(wizard.StepTalent) {
			return ErrTalentSkipped
		}
		return snap.Draft.AddCreator(*res)
	})
}

func (s *service) RemoveCreator(ctx context.Context, session, creatorID string) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		return snap.Draft.RemoveCreator(creatorID)
	})
}

func (s *service) SetCreatorQuantity(ctx context.Context, session, creatorID string, qty int) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		return snap.Draft.SetCreatorQuantity(creatorID, qty)
	})
}

func (s *service) SetCreatorSample(ctx context.Context, session, creatorID, sampleID string) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		return snap.Draft.SetCreatorSample(creatorID, sampleID)
	})
}

func (s *service) UpdateCreator(ctx context.Context, session, creatorID string, qty *int, sampleID *string) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		if qty != nil {
			if err := snap.Draft.SetCreatorQuantity(creatorID, *qty); err != nil {
				return err
			}
		}
		if sampleID != nil {
			return snap.Draft.SetCreatorSample(creatorID, *sampleID)
		}
		return nil
	})
}

func (s *service) SetStudio(ctx context.Context, session, studioID string) (*View, error) {
	res, err := s.lookup(ctx, studioID)
	if err != nil {
		return nil, err
	}
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		return snap.Draft.SetStudio(*res)
	})
}

func (s *service) ClearStudio(ctx context.Context, session string) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		snap.Draft.ClearStudio()
		return nil
	})
}

func (s *service) SetStyle(ctx context.Context, session, style string) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		return snap.Draft.SetStyle(style)
	})
}

func (s *service) SetGlobalQuantity(ctx context.Context, session string, qty int) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		return snap.Draft.SetGlobalQuantity(qty)
	})
}

func (s *service) SetDate(ctx context.Context, session, date string) (*View, error) {
	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		return snap.Draft.SetDate(date)
	})
}

func (s *service) SetTime(ctx context.Context, session, label string) (*View, error) {
	if !availability.IsSlotLabel(label) {
		return nil, draft.ErrInvalidTime
	}

	snap, err := s.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	if availabilityStale(snap) {
		if _, err := s.RefreshAvailability(ctx, session); err != nil {
			return nil, err
		}
	}

	return s.updateView(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		if slices.Contains(bookedFor(*snap), label) {
			return ErrSlotUnavailable
		}
		return snap.Draft.SetTime(label)
	})
}

func (s *service) RefreshAvailability(ctx context.Context, session string) (*View, error) {
	// 1. Tag the request and remember what it asks for
	var tag draft.Availability
	snap, err := s.update(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		tag = draft.Availability{
			Seq:        snap.Availability.Seq + 1,
			ResourceID: snap.Draft.StudioID(),
			Date:       snap.Draft.Date,
		}
		snap.Availability = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	if tag.ResourceID == "" || tag.Date == "" {
		return newView(snap), nil
	}

	// 2. Fetch without holding the session
	booked := s.avail.GetBookedSlots(ctx, tag.ResourceID, tag.Date)

	// 3. Apply only if no newer request was issued meanwhile
	snap, err = s.update(ctx, session, func(snap *draft.Snapshot, seq *wizard.Sequencer) error {
		if snap.Availability.Seq != tag.Seq {
			s.logger.Debug("discarding stale availability response",
				zap.String("session", session),
				zap.Int64("seq", tag.Seq),
				zap.Int64("latestSeq", snap.Availability.Seq),
			)
			return nil
		}
		tag.Booked = booked
		tag.Loaded = true
		snap.Availability = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newView(snap), nil
}

func (s *service) Submit(ctx context.Context, session, userID string) (*booking.Booking, error) {
	unlock := s.locks.lock(session)
	defer unlock()

	snap, err := s.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	seq := wizard.Restore(snap.Wizard)
	if seq.Current() != wizard.StepReview {
		return nil, ErrNotOnReview
	}

	// Validation happens before any collaborator is called.
	if err := snap.Draft.Validate(); err != nil {
		return nil, err
	}
	if step, ok := firstIncomplete(seq, snap); ok {
		return nil, ErrStepIncomplete.Withf("step %q is incomplete", step)
	}

	b, err := s.bookings.Submit(ctx, userID, snap.Draft)
	if err != nil {
		return nil, s.submitFailed(ctx, session, snap, err)
	}

	if err := s.store.Delete(ctx, session); err != nil {
		// The booking exists; a leftover draft is only an inconvenience.
		s.logger.Error("failed to clear draft after submission",
			zap.String("session", session),
			zap.String("bookingID", b.ID),
			zap.Error(err),
		)
	}
	return b, nil
}

// submitFailed keeps the draft, records a lost slot race in the availability
// cache and turns unknown errors into a generic message.
func (s *service) submitFailed(ctx context.Context, session string, snap draft.Snapshot, err error) error {
	if errors.Is(err, booking.ErrSlotTaken) && snap.Availability.Matches(snap.Draft.StudioID(), snap.Draft.Date) {
		if !slices.Contains(snap.Availability.Booked, snap.Draft.Time) {
			snap.Availability.Booked = append(snap.Availability.Booked, snap.Draft.Time)
			if saveErr := s.store.Save(ctx, session, snap); saveErr != nil {
				s.logger.Warn("failed to record taken slot", zap.String("session", session), zap.Error(saveErr))
			}
		}
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		s.logger.Info("booking submission rejected",
			zap.String("session", session),
			zap.Int("code", appErr.Code),
			zap.String("reason", appErr.Message),
		)
		return err
	}

	s.logger.Error("booking submission failed", zap.String("session", session), zap.Error(err))
	return ErrSubmitFailed.WithCause(err)
}
