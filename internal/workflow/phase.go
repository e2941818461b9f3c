// Package workflow implements the phased progression shared by feedback items
// and lessons-learned postmortems.
package workflow

// Phase is a named stage of a workflow sequence
type Phase string

const (
	PhaseInitiate          Phase = "Initiate"
	PhaseAnalyze           Phase = "Analyze"
	PhaseRootCauseAnalysis Phase = "Root Cause Analysis"
	PhaseImplementation    Phase = "Implementation"
	PhaseClosed            Phase = "Closed"
)

// Sequence is an ordered list of phases. Transitions are decided by position,
// never by comparing names.
type Sequence []Phase

var (
	// FeedbackPhases is the feedback workflow. Initiate exists for parity with
	// lessons learned but new feedback always starts at Analyze.
	FeedbackPhases = Sequence{PhaseInitiate, PhaseAnalyze, PhaseImplementation, PhaseClosed}

	// LessonsLearnedPhases is the postmortem workflow
	LessonsLearnedPhases = Sequence{PhaseInitiate, PhaseRootCauseAnalysis, PhaseImplementation, PhaseClosed}
)

// Index returns the position of p in the sequence or -1
func (s Sequence) Index(p Phase) int {
	for i, phase := range s {
		if phase == p {
			return i
		}
	}
	return -1
}

// Contains reports whether p belongs to the sequence
func (s Sequence) Contains(p Phase) bool {
	return s.Index(p) >= 0
}

// First returns the initial phase
func (s Sequence) First() Phase {
	return s[0]
}

// Terminal returns the last phase
func (s Sequence) Terminal() Phase {
	return s[len(s)-1]
}

// Strings returns the phase names in order
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = string(p)
	}
	return out
}
