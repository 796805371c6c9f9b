// Package wizard implements the campaign builder step sequencer.
//
// The sequencer only knows the order of steps and which ones are skipped.
// Whether a step may be left is decided by the caller, which owns the draft.
package wizard

import (
	"net/http"
	"slices"

	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/apperror"
)

var ErrNotOnSetup = apperror.New(http.StatusConflict, "setup has already been completed")

type Step string

const (
	StepSetup    Step = "setup"
	StepTalent   Step = "talent"
	StepStyle    Step = "style"
	StepStudio   Step = "studio"
	StepBrief    Step = "brief"
	StepSchedule Step = "schedule"
	StepReview   Step = "review"
)

// AllSteps is the full sequence before any pruning.
var AllSteps = []Step{
	StepSetup,
	StepTalent,
	StepStyle,
	StepStudio,
	StepBrief,
	StepSchedule,
	StepReview,
}

func (s Step) Valid() bool {
	return slices.Contains(AllSteps, s)
}

// State is the persisted form of a Sequencer.
type State struct {
	Current Step   `json:"current"`
	Skipped []Step `json:"skipped,omitempty"`
}

// Sequencer walks the active step list. The zero value is not usable; use New or Restore.
type Sequencer struct {
	current Step
	skipped map[Step]bool
	active  []Step
}

func New() *Sequencer {
	s := &Sequencer{}
	s.Reset()
	return s
}

// Restore rebuilds a sequencer from persisted state.
// Unknown steps or a current step that is skipped fall back to a fresh sequencer.
func Restore(st State) *Sequencer {
	s := New()
	if st.Current == "" {
		return s
	}
	for _, step := range st.Skipped {
		if !step.Valid() || step == StepSetup || step == StepReview {
			return New()
		}
		s.skipped[step] = true
	}
	s.recompute()
	if !slices.Contains(s.active, st.Current) {
		return New()
	}
	s.current = st.Current
	return s
}

// Reset returns to setup and forgets every skip decision.
func (s *Sequencer) Reset() {
	s.current = StepSetup
	s.skipped = make(map[Step]bool)
	s.recompute()
}

func (s *Sequencer) recompute() {
	s.active = make([]Step, 0, len(AllSteps))
	for _, step := range AllSteps {
		if !s.skipped[step] {
			s.active = append(s.active, step)
		}
	}
}

func (s *Sequencer) Current() Step {
	return s.current
}

// ActiveSteps returns a copy of the current active sequence.
func (s *Sequencer) ActiveSteps() []Step {
	return slices.Clone(s.active)
}

func (s *Sequencer) IsSkipped(step Step) bool {
	return s.skipped[step]
}

func (s *Sequencer) IsLast() bool {
	return s.current == s.active[len(s.active)-1]
}

func (s *Sequencer) IsFirst() bool {
	return s.current == s.active[0]
}

// ChooseSetup records whether the user brings their own talent and leaves setup.
// Bringing own talent prunes the talent step for the rest of the session;
// a later choice on setup does not bring it back.
func (s *Sequencer) ChooseSetup(ownTalent bool) error {
	if s.current != StepSetup {
		return ErrNotOnSetup
	}
	if ownTalent {
		s.skipped[StepTalent] = true
	}
	s.recompute()
	s.Next()
	return nil
}

// Next advances to the following active step. No-op on the last step.
func (s *Sequencer) Next() {
	i := slices.Index(s.active, s.current)
	if i < 0 || i == len(s.active)-1 {
		return
	}
	s.current = s.active[i+1]
}

// Back retreats to the previous active step. No-op on the first step.
// Skip decisions are kept.
func (s *Sequencer) Back() {
	i := slices.Index(s.active, s.current)
	if i <= 0 {
		return
	}
	s.current = s.active[i-1]
}

// State snapshots the sequencer for persistence.
func (s *Sequencer) State() State {
	st := State{Current: s.current}
	for _, step := range AllSteps {
		if s.skipped[step] {
			st.Skipped = append(st.Skipped, step)
		}
	}
	return st
}
