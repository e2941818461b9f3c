package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a free-text remark left on a customer
type Note struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"customerId"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedBy  string    `gorm:"not null" json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BeforeCreate assigns an ID when none was set
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
