package service

import (
	"fmt"
	"strings"

	"github.com/pageza/renewals/backend/internal/workflow"
)

// phaseFields is the union of phase payload fields a PATCH body can carry
type phaseFields struct {
	Analysis            *string
	RootCauseAnalysis   *string
	ImplementationPlan  *string
	ImplementationNotes *string
	Outcome             *string
}

func (f phaseFields) updates() []workflow.PhaseUpdate {
	var updates []workflow.PhaseUpdate
	if f.Analysis != nil {
		updates = append(updates, workflow.AnalysisUpdate{Analysis: f.Analysis})
	}
	if f.RootCauseAnalysis != nil {
		updates = append(updates, workflow.RootCauseUpdate{RootCauseAnalysis: f.RootCauseAnalysis})
	}
	if f.ImplementationPlan != nil || f.ImplementationNotes != nil {
		updates = append(updates, workflow.ImplementationUpdate{Plan: f.ImplementationPlan, Notes: f.ImplementationNotes})
	}
	if f.Outcome != nil {
		updates = append(updates, workflow.OutcomeUpdate{Outcome: f.Outcome})
	}
	return updates
}

// update turns the fields into the typed payload of a single phase. Fields
// from more than one phase in one request are rejected.
func (f phaseFields) update() (workflow.PhaseUpdate, error) {
	updates := f.updates()
	switch len(updates) {
	case 0:
		return nil, nil
	case 1:
		return updates[0], nil
	default:
		return nil, fmt.Errorf("%w: fields of %d phases in one request", workflow.ErrPayloadPhaseMismatch, len(updates))
	}
}

// scopedTo keeps only the payload of current and drops the other phases'
// fields, so a body carrying every phase field saves the current one. A body
// with text for other phases and nothing for current is still a mismatch.
func (f phaseFields) scopedTo(current workflow.Phase) (workflow.PhaseUpdate, error) {
	for _, u := range f.updates() {
		for _, p := range u.Phases() {
			if p == current {
				return u, nil
			}
		}
	}
	if f.hasText() {
		return nil, fmt.Errorf("%w: item is in %s", workflow.ErrPayloadPhaseMismatch, current)
	}
	return nil, nil
}

func (f phaseFields) hasText() bool {
	for _, v := range []*string{f.Analysis, f.RootCauseAnalysis, f.ImplementationPlan, f.ImplementationNotes, f.Outcome} {
		if v != nil && strings.TrimSpace(*v) != "" {
			return true
		}
	}
	return false
}

// applyPhaseChange routes a PATCH through the engine. A phase different from
// the current one requests a transition carrying the payload; otherwise the
// payload is saved in place.
func applyPhaseChange(engine *workflow.Engine, item workflow.Record, phase *string, pending workflow.PhaseUpdate, actingUser string) error {
	if phase != nil && workflow.Phase(*phase) != item.CurrentPhase() {
		return engine.RequestPhaseChange(item, workflow.Phase(*phase), pending, actingUser)
	}
	return engine.SavePhasePayload(item, pending, actingUser)
}
