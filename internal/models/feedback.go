package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/workflow"
)

// Feedback is a customer feedback item moving through the
// Analyze -> Implementation -> Closed workflow
type Feedback struct {
	ID                  uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CustomerName        string         `gorm:"not null" json:"customerName"`
	AppName             string         `json:"appName"`
	Software            string         `gorm:"not null" json:"software"`
	FeedbackText        string         `gorm:"type:text;not null" json:"feedbackText"`
	Phase               workflow.Phase `gorm:"not null;default:'Analyze'" json:"phase"`
	SubmittedBy         string         `gorm:"not null" json:"submittedBy"`
	SubmittedDate       time.Time      `gorm:"not null" json:"submittedDate"`
	Analysis            string         `gorm:"type:text" json:"analysis"`
	ImplementationPlan  string         `gorm:"type:text" json:"implementationPlan"`
	ImplementationNotes string         `gorm:"type:text" json:"implementationNotes"`
	Outcome             string         `gorm:"type:text" json:"outcome"`
	ClosedDate          *time.Time     `json:"closedDate"`
	ClosedBy            string         `json:"closedBy"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedback"
}

// BeforeCreate assigns an ID when none was set
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *Feedback) CurrentPhase() workflow.Phase { return f.Phase }

func (f *Feedback) SetPhase(p workflow.Phase) { f.Phase = p }

func (f *Feedback) FieldValue(field workflow.Field) string {
	switch field {
	case workflow.FieldAnalysis:
		return f.Analysis
	case workflow.FieldImplementationPlan:
		return f.ImplementationPlan
	case workflow.FieldImplementationNotes:
		return f.ImplementationNotes
	case workflow.FieldOutcome:
		return f.Outcome
	}
	return ""
}

func (f *Feedback) SetField(field workflow.Field, value string) {
	switch field {
	case workflow.FieldAnalysis:
		f.Analysis = value
	case workflow.FieldImplementationPlan:
		f.ImplementationPlan = value
	case workflow.FieldImplementationNotes:
		f.ImplementationNotes = value
	case workflow.FieldOutcome:
		f.Outcome = value
	}
}

func (f *Feedback) StampClosed(at time.Time, by string) {
	f.ClosedDate = &at
	f.ClosedBy = by
}

// FeedbackFilters represents filters for listing feedback
type FeedbackFilters struct {
	Software string
	Phase    string
}
