package types

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is a user without credentials
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	// CanManageUsers tells the client whether to show user management
	CanManageUsers bool `json:"canManageUsers"`
}

// TokenResponse is returned by POST /api/token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AttachmentURLResponse is returned by GET /api/customers/:id/attachment/url
type AttachmentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DashboardStats summarizes the book of business
type DashboardStats struct {
	TotalCustomers       int64   `json:"totalCustomers"`
	ChurnedCustomers     int64   `json:"churnedCustomers"`
	PilotCustomers       int64   `json:"pilotCustomers"`
	UpcomingRenewals     int64   `json:"upcomingRenewals"`
	UpcomingRenewalValue float64 `json:"upcomingRenewalValue"`
	AtRiskSubscriptions  int64   `json:"atRiskSubscriptions"`
	OpenFeedback         int64   `json:"openFeedback"`
	OpenLessonsLearned   int64   `json:"openLessonsLearned"`
}
