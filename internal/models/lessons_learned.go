package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/workflow"
)

// LessonsLearned is a postmortem moving through the
// Initiate -> Root Cause Analysis -> Implementation -> Closed workflow.
// CustomerID is a lookup reference only; deleting the customer leaves the
// lesson in place.
type LessonsLearned struct {
	ID                  uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	Title               string         `gorm:"not null" json:"title"`
	Description         string         `gorm:"type:text" json:"description"`
	Phase               workflow.Phase `gorm:"not null;default:'Initiate'" json:"phase"`
	CustomerID          *uuid.UUID     `gorm:"type:varchar(36);index" json:"customerId"`
	Software            string         `json:"software"`
	InitiatedBy         string         `gorm:"not null" json:"initiatedBy"`
	InitiatedDate       time.Time      `gorm:"not null" json:"initiatedDate"`
	RootCauseAnalysis   string         `gorm:"type:text" json:"rootCauseAnalysis"`
	ImplementationPlan  string         `gorm:"type:text" json:"implementationPlan"`
	ImplementationNotes string         `gorm:"type:text" json:"implementationNotes"`
	Outcome             string         `gorm:"type:text" json:"outcome"`
	ClosedDate          *time.Time     `json:"closedDate"`
	ClosedBy            string         `json:"closedBy"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// TableName returns the table name for the LessonsLearned model
func (LessonsLearned) TableName() string {
	return "lessons_learned"
}

// BeforeCreate assigns an ID when none was set
func (l *LessonsLearned) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *LessonsLearned) CurrentPhase() workflow.Phase { return l.Phase }

func (l *LessonsLearned) SetPhase(p workflow.Phase) { l.Phase = p }

func (l *LessonsLearned) FieldValue(field workflow.Field) string {
	switch field {
	case workflow.FieldRootCauseAnalysis:
		return l.RootCauseAnalysis
	case workflow.FieldImplementationPlan:
		return l.ImplementationPlan
	case workflow.FieldImplementationNotes:
		return l.ImplementationNotes
	case workflow.FieldOutcome:
		return l.Outcome
	}
	return ""
}

func (l *LessonsLearned) SetField(field workflow.Field, value string) {
	switch field {
	case workflow.FieldRootCauseAnalysis:
		l.RootCauseAnalysis = value
	case workflow.FieldImplementationPlan:
		l.ImplementationPlan = value
	case workflow.FieldImplementationNotes:
		l.ImplementationNotes = value
	case workflow.FieldOutcome:
		l.Outcome = value
	}
}

func (l *LessonsLearned) StampClosed(at time.Time, by string) {
	l.ClosedDate = &at
	l.ClosedBy = by
}

// LessonsLearnedFilters represents filters for listing lessons learned
type LessonsLearnedFilters struct {
	Software   string
	Phase      string
	CustomerID *uuid.UUID
}
