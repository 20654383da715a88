package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// AttributeMin and AttributeMax bound every character attribute.
	AttributeMin = 1
	AttributeMax = 30
)

// Attributes is the six-stat block embedded in a character sheet.
type Attributes struct {
	Strength     int `json:"strength" gorm:"column:attr_str;not null"`
	Dexterity    int `json:"dexterity" gorm:"column:attr_dex;not null"`
	Constitution int `json:"constitution" gorm:"column:attr_con;not null"`
	Intelligence int `json:"intelligence" gorm:"column:attr_int;not null"`
	Wisdom       int `json:"wisdom" gorm:"column:attr_wis;not null"`
	Charisma     int `json:"charisma" gorm:"column:attr_cha;not null"`
}

// InRange reports whether every attribute lies in [AttributeMin, AttributeMax].
func (a Attributes) InRange() bool {
	for _, v := range []int{a.Strength, a.Dexterity, a.Constitution, a.Intelligence, a.Wisdom, a.Charisma} {
		if v < AttributeMin || v > AttributeMax {
			return false
		}
	}
	return true
}

// Character is a player character sheet inside a campaign.
// Name is unique per campaign (case-insensitive, enforced in the service),
// and a player owns at most one character per campaign.
type Character struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name       string     `json:"name" gorm:"size:100;not null;uniqueIndex:uniq_character_campaign_name"`
	Class      string     `json:"class" gorm:"size:50;not null"`
	Race       string     `json:"race" gorm:"size:50;not null"`
	Level      int        `json:"level" gorm:"not null"`
	HP         int        `json:"hp" gorm:"not null"`
	MaxHP      int        `json:"max_hp" gorm:"not null"`
	Attributes Attributes `json:"attributes" gorm:"embedded"`
	OwnerID    uuid.UUID  `json:"owner_id" gorm:"type:char(36);not null;index"`
	CampaignID uuid.UUID  `json:"campaign_id" gorm:"type:char(36);not null;index;uniqueIndex:uniq_character_campaign_name"`

	Owner    *User     `json:"-" gorm:"foreignKey:OwnerID"`
	Campaign *Campaign `json:"-" gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Character) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
