package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is a global catalog entry; it is not scoped to a campaign.
// Name is unique case-insensitively (enforced in the service).
type Item struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Weight      decimal.Decimal `json:"weight" gorm:"type:decimal(10,2);not null"`
	Price       int             `json:"price" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
