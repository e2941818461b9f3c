package workflow

import "time"

// Field names a phase-scoped text field of a workflow record
type Field string

const (
	FieldAnalysis            Field = "analysis"
	FieldRootCauseAnalysis   Field = "rootCauseAnalysis"
	FieldImplementationPlan  Field = "implementationPlan"
	FieldImplementationNotes Field = "implementationNotes"
	FieldOutcome             Field = "outcome"
)

// Record is the view of a persisted item the engine needs. models.Feedback and
// models.LessonsLearned implement it.
type Record interface {
	CurrentPhase() Phase
	SetPhase(Phase)
	FieldValue(Field) string
	SetField(Field, string)
	StampClosed(at time.Time, by string)
}

// PhaseUpdate is a typed payload for exactly one phase. Nil fields are left
// untouched when merged.
type PhaseUpdate interface {
	// Phases lists the phases this update may be applied in
	Phases() []Phase
	assignments() map[Field]*string
}

// AnalysisUpdate carries the feedback Analyze phase payload
type AnalysisUpdate struct {
	Analysis *string
}

func (AnalysisUpdate) Phases() []Phase { return []Phase{PhaseAnalyze} }

func (u AnalysisUpdate) assignments() map[Field]*string {
	return map[Field]*string{FieldAnalysis: u.Analysis}
}

// RootCauseUpdate carries the lessons-learned Root Cause Analysis payload
type RootCauseUpdate struct {
	RootCauseAnalysis *string
}

func (RootCauseUpdate) Phases() []Phase { return []Phase{PhaseRootCauseAnalysis} }

func (u RootCauseUpdate) assignments() map[Field]*string {
	return map[Field]*string{FieldRootCauseAnalysis: u.RootCauseAnalysis}
}

// ImplementationUpdate carries the Implementation phase payload
type ImplementationUpdate struct {
	Plan  *string
	Notes *string
}

func (ImplementationUpdate) Phases() []Phase { return []Phase{PhaseImplementation} }

func (u ImplementationUpdate) assignments() map[Field]*string {
	return map[Field]*string{
		FieldImplementationPlan:  u.Plan,
		FieldImplementationNotes: u.Notes,
	}
}

// OutcomeUpdate carries the Closed phase payload
type OutcomeUpdate struct {
	Outcome *string
}

func (OutcomeUpdate) Phases() []Phase { return []Phase{PhaseClosed} }

func (u OutcomeUpdate) assignments() map[Field]*string {
	return map[Field]*string{FieldOutcome: u.Outcome}
}

func appliesTo(u PhaseUpdate, p Phase) bool {
	for _, phase := range u.Phases() {
		if phase == p {
			return true
		}
	}
	return false
}

func merge(item Record, u PhaseUpdate) {
	if u == nil {
		return
	}
	for field, value := range u.assignments() {
		if value != nil {
			item.SetField(field, *value)
		}
	}
}

// pendingValue returns the value u would assign to field, if any
func pendingValue(u PhaseUpdate, field Field) (string, bool) {
	if u == nil {
		return "", false
	}
	v, ok := u.assignments()[field]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}
