package types

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest is the body of POST /api/login and POST /api/token
type LoginRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the body of POST /api/users
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,notblank,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateUserRequest is the body of PATCH /api/users/:id. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,notblank,max=100"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// CreateCustomerRequest is the body of POST /api/customers
type CreateCustomerRequest struct {
	Name                   string     `json:"name" binding:"required,notblank"`
	Email                  string     `json:"email" binding:"omitempty,email"`
	Company                string     `json:"company" binding:"required,notblank"`
	AccountManager         string     `json:"accountManager"`
	OpportunityName        string     `json:"opportunityName"`
	RenewalAmount          *float64   `json:"renewalAmount" binding:"omitempty,gte=0"`
	Status                 string     `json:"status"`
	Software               string     `json:"software" binding:"omitempty,software"`
	Churn                  bool       `json:"churn"`
	ChurnReason            string     `json:"churnReason"`
	PilotCustomer          bool       `json:"pilotCustomer"`
	Site                   string     `json:"site"`
	ResponsibleSalesperson string     `json:"responsibleSalesperson"`
	RenewalExpirationDate  *time.Time `json:"renewalExpirationDate"`
	AttachmentData         string     `json:"attachmentData"`
	AttachmentFilename     string     `json:"attachmentFilename"`
	AttachmentMimeType     string     `json:"attachmentMimeType"`
}

// UpdateCustomerRequest is the body of PATCH /api/customers/:id. An omitted
// attachmentData keeps the stored file, an empty one removes it.
type UpdateCustomerRequest struct {
	Name                   *string    `json:"name" binding:"omitempty,notblank"`
	Email                  *string    `json:"email" binding:"omitempty,email"`
	Company                *string    `json:"company" binding:"omitempty,notblank"`
	AccountManager         *string    `json:"accountManager"`
	OpportunityName        *string    `json:"opportunityName"`
	RenewalAmount          *float64   `json:"renewalAmount" binding:"omitempty,gte=0"`
	Status                 *string    `json:"status"`
	Software               *string    `json:"software" binding:"omitempty,software"`
	Churn                  *bool      `json:"churn"`
	ChurnReason            *string    `json:"churnReason"`
	PilotCustomer          *bool      `json:"pilotCustomer"`
	Site                   *string    `json:"site"`
	ResponsibleSalesperson *string    `json:"responsibleSalesperson"`
	RenewalExpirationDate  *time.Time `json:"renewalExpirationDate"`
	AttachmentData         *string    `json:"attachmentData"`
	AttachmentFilename     string     `json:"attachmentFilename"`
	AttachmentMimeType     string     `json:"attachmentMimeType"`
}

// CreateSubscriptionRequest is the body of POST /api/customers/:id/subscriptions
type CreateSubscriptionRequest struct {
	ProductName  string    `json:"productName" binding:"required,notblank"`
	RenewalDate  time.Time `json:"renewalDate" binding:"required"`
	Value        float64   `json:"value" binding:"gte=0"`
	Status       string    `json:"status" binding:"omitempty,oneof=healthy at-risk critical"`
	BillingCycle string    `json:"billingCycle" binding:"required,oneof=monthly quarterly annual"`
}

// CreateNoteRequest is the body of POST /api/customers/:id/notes
type CreateNoteRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

// CreateFeedbackRequest is the body of POST /api/feedback. The phase is
// always assigned by the server.
type CreateFeedbackRequest struct {
	CustomerName string `json:"customerName" binding:"required,notblank"`
	AppName      string `json:"appName"`
	Software     string `json:"software" binding:"required,software"`
	FeedbackText string `json:"feedbackText" binding:"required,notblank"`
	SubmittedBy  string `json:"submittedBy"`
}

// UpdateFeedbackRequest is the body of PATCH /api/feedback/:id. Phase, when
// it differs from the current phase, requests a transition; the phase fields
// are the payload of the item's current phase.
type UpdateFeedbackRequest struct {
	CustomerName *string `json:"customerName" binding:"omitempty,notblank"`
	AppName      *string `json:"appName"`
	Software     *string `json:"software" binding:"omitempty,software"`
	FeedbackText *string `json:"feedbackText" binding:"omitempty,notblank"`
	Phase        *string `json:"phase"`

	Analysis            *string `json:"analysis"`
	ImplementationPlan  *string `json:"implementationPlan"`
	ImplementationNotes *string `json:"implementationNotes"`
	Outcome             *string `json:"outcome"`
}

// CreateLessonsLearnedRequest is the body of POST /api/lessons-learned
type CreateLessonsLearnedRequest struct {
	Title       string     `json:"title" binding:"required,notblank"`
	Description string     `json:"description"`
	CustomerID  *uuid.UUID `json:"customerId"`
	Software    string     `json:"software" binding:"omitempty,software"`
	InitiatedBy string     `json:"initiatedBy"`
}

// UpdateLessonsLearnedRequest is the body of PATCH /api/lessons-learned/:id
type UpdateLessonsLearnedRequest struct {
	Title       *string    `json:"title" binding:"omitempty,notblank"`
	Description *string    `json:"description"`
	CustomerID  *uuid.UUID `json:"customerId"`
	Software    *string    `json:"software" binding:"omitempty,software"`
	Phase       *string    `json:"phase"`

	RootCauseAnalysis   *string `json:"rootCauseAnalysis"`
	ImplementationPlan  *string `json:"implementationPlan"`
	ImplementationNotes *string `json:"implementationNotes"`
	Outcome             *string `json:"outcome"`
}
