package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Software types a customer, feedback item or lesson can concern
const (
	SoftwareUptime360 = "Uptime360"
	SoftwareViewPoint = "ViewPoint"
)

// SoftwareTypes lists the valid software values
var SoftwareTypes = []string{SoftwareUptime360, SoftwareViewPoint}

// Customer is an account under renewal tracking. The attachment fields hold a
// single optional file as a canonical base64 data URI.
type Customer struct {
	ID                     uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	Name                   string     `gorm:"not null" json:"name"`
	Email                  string     `gorm:"not null;default:''" json:"email"`
	Company                string     `gorm:"not null" json:"company"`
	AccountManager         string     `json:"accountManager"`
	OpportunityName        string     `json:"opportunityName"`
	RenewalAmount          *float64   `gorm:"type:decimal(10,2)" json:"renewalAmount"`
	Status                 string     `gorm:"not null;default:'active'" json:"status"`
	Software               string     `json:"software"`
	Churn                  bool       `gorm:"not null;default:false" json:"churn"`
	ChurnReason            string     `gorm:"type:text" json:"churnReason"`
	PilotCustomer          bool       `gorm:"not null;default:false" json:"pilotCustomer"`
	Site                   string     `json:"site"`
	ResponsibleSalesperson string     `json:"responsibleSalesperson"`
	RenewalExpirationDate  *time.Time `json:"renewalExpirationDate"`
	AttachmentData         string     `gorm:"type:text" json:"attachmentData,omitempty"`
	AttachmentFilename     string     `json:"attachmentFilename,omitempty"`
	AttachmentMimeType     string     `json:"attachmentMimeType,omitempty"`
	AttachmentSize         int        `json:"attachmentSize,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns an ID when none was set
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasAttachment reports whether the customer carries a file
func (c *Customer) HasAttachment() bool {
	return c.AttachmentData != ""
}

// ClearAttachment removes the stored file
func (c *Customer) ClearAttachment() {
	c.AttachmentData = ""
	c.AttachmentFilename = ""
	c.AttachmentMimeType = ""
	c.AttachmentSize = 0
}

// CustomerFilters narrows customer listings
type CustomerFilters struct {
	Software string
	Churned  *bool
	Search   string
}
