package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownPhase is returned when a target phase is not part of the workflow
	ErrUnknownPhase = errors.New("unknown phase")
	// ErrSkipAhead is returned for forward moves of more than one phase. The
	// client never issues them, so they are rejected rather than clamped.
	ErrSkipAhead = errors.New("cannot advance more than one phase at a time")
	// ErrPayloadPhaseMismatch is returned when a payload does not belong to the
	// item's current phase
	ErrPayloadPhaseMismatch = errors.New("payload does not belong to the current phase")
)

// GuardFailure reports a forward transition attempted without the required
// field of the phase being left. The item is never mutated when it is returned.
type GuardFailure struct {
	Field Field
	Phase Phase
}

func (e *GuardFailure) Error() string {
	return fmt.Sprintf("%s is required before moving to %s", e.Field, e.Phase)
}

// Guard names the field that must be non-blank before leaving a phase
type Guard struct {
	Field Field
}

// ClosureStamp selects when closedDate/closedBy are written
type ClosureStamp int

const (
	// StampOnTransition stamps closure when the item moves into the terminal phase
	StampOnTransition ClosureStamp = iota
	// StampOnSave stamps closure whenever the terminal phase payload is saved
	StampOnSave
)

// Policy is the rule table for one kind of workflow item
type Policy struct {
	Name     string
	Sequence Sequence
	// Entry is where new items start. Phases before it are never entered.
	Entry Phase
	// Guards is keyed by the phase being left
	Guards  map[Phase]Guard
	Closure ClosureStamp
}

// FeedbackPolicy gates every forward move on the current phase's main field
// and stamps closure on the move into Closed.
var FeedbackPolicy = Policy{
	Name:     "feedback",
	Sequence: FeedbackPhases,
	Entry:    PhaseAnalyze,
	Guards: map[Phase]Guard{
		PhaseAnalyze:        {Field: FieldAnalysis},
		PhaseImplementation: {Field: FieldImplementationPlan},
	},
	Closure: StampOnTransition,
}

// LessonsLearnedPolicy has no forward guards; any adjacent phase can be
// entered immediately. Closure is stamped when the Closed payload is saved.
var LessonsLearnedPolicy = Policy{
	Name:     "lessons_learned",
	Sequence: LessonsLearnedPhases,
	Entry:    PhaseInitiate,
	Guards:   map[Phase]Guard{},
	Closure:  StampOnSave,
}

// Engine applies a Policy to records. It holds no per-item state and is safe
// for concurrent use.
type Engine struct {
	policy Policy
	now    func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the time source used for closure stamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine for the given policy
func NewEngine(policy Policy, opts ...Option) *Engine {
	e := &Engine{
		policy: policy,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFeedbackEngine creates an engine for feedback items
func NewFeedbackEngine(opts ...Option) *Engine {
	return NewEngine(FeedbackPolicy, opts...)
}

// NewLessonsLearnedEngine creates an engine for lessons-learned items
func NewLessonsLearnedEngine(opts ...Option) *Engine {
	return NewEngine(LessonsLearnedPolicy, opts...)
}

// Policy returns the engine's rule table
func (e *Engine) Policy() Policy {
	return e.policy
}

// InitialPhase is the phase every new item of this kind is created in
func (e *Engine) InitialPhase() Phase {
	if e.policy.Entry != "" {
		return e.policy.Entry
	}
	return e.policy.Sequence.First()
}

// entryIndex is the lowest position an item may occupy
func (e *Engine) entryIndex() int {
	if i := e.policy.Sequence.Index(e.policy.Entry); i > 0 {
		return i
	}
	return 0
}

// RequestPhaseChange moves item to target. Backward and no-op moves are
// allowed down to the policy's entry phase. A forward move of exactly one phase must satisfy the guard of the
// current phase, checked against pending (or the persisted value when pending
// omits the field). pending must belong to the current phase and is merged on
// success.
func (e *Engine) RequestPhaseChange(item Record, target Phase, pending PhaseUpdate, actingUser string) error {
	current := item.CurrentPhase()
	currentIndex := e.policy.Sequence.Index(current)
	targetIndex := e.policy.Sequence.Index(target)
	if targetIndex < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPhase, target)
	}
	if targetIndex < e.entryIndex() {
		return fmt.Errorf("%w: %s items never enter %q", ErrUnknownPhase, e.policy.Name, target)
	}
	if currentIndex < 0 {
		return fmt.Errorf("%w: item is in %q", ErrUnknownPhase, current)
	}
	if pending != nil && !appliesTo(pending, current) {
		return fmt.Errorf("%w: item is in %s", ErrPayloadPhaseMismatch, current)
	}

	if targetIndex > currentIndex+1 {
		return fmt.Errorf("%w: %s to %s", ErrSkipAhead, current, target)
	}

	if targetIndex == currentIndex+1 {
		if guard, ok := e.policy.Guards[current]; ok {
			value, provided := pendingValue(pending, guard.Field)
			if !provided {
				value = item.FieldValue(guard.Field)
			}
			if strings.TrimSpace(value) == "" {
				return &GuardFailure{Field: guard.Field, Phase: target}
			}
		}
	}

	merge(item, pending)
	item.SetPhase(target)

	if targetIndex == currentIndex+1 && target == e.policy.Sequence.Terminal() && e.policy.Closure == StampOnTransition {
		item.StampClosed(e.now(), actingUser)
	}
	return nil
}

// SavePhasePayload persists the current phase's fields without moving the item.
// Under StampOnSave, saving in the terminal phase stamps closure.
func (e *Engine) SavePhasePayload(item Record, update PhaseUpdate, actingUser string) error {
	current := item.CurrentPhase()
	if !e.policy.Sequence.Contains(current) {
		return fmt.Errorf("%w: item is in %q", ErrUnknownPhase, current)
	}
	if update == nil {
		return nil
	}
	if !appliesTo(update, current) {
		return fmt.Errorf("%w: item is in %s", ErrPayloadPhaseMismatch, current)
	}

	merge(item, update)

	if current == e.policy.Sequence.Terminal() && e.policy.Closure == StampOnSave {
		item.StampClosed(e.now(), actingUser)
	}
	return nil
}
