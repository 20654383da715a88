package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryEntry is the quantity of one item type held by one character.
// Identity is the (character, item) pair; a row with quantity 0 never
// persists, it is deleted instead.
type InventoryEntry struct {
	CharacterID uuid.UUID `json:"character_id" gorm:"type:char(36);primaryKey"`
	ItemID      uuid.UUID `json:"item_id" gorm:"type:char(36);primaryKey;index"`
	Quantity    int       `json:"quantity" gorm:"not null"`

	Character *Character `json:"-" gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE"`
	Item      *Item      `json:"-" gorm:"foreignKey:ItemID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
