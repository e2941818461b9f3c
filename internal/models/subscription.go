package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription is a product a customer renews on a billing cycle
type Subscription struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CustomerID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"customerId"`
	Customer     *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	ProductName  string    `gorm:"not null" json:"productName"`
	RenewalDate  time.Time `gorm:"not null" json:"renewalDate"`
	Value        float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	Status       string    `gorm:"not null;default:'healthy'" json:"status"` // healthy, at-risk, critical
	BillingCycle string    `gorm:"not null" json:"billingCycle"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BeforeCreate assigns an ID when none was set
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
