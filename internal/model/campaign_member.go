package model

import (
	"time"

	"github.com/google/uuid"
)

// CampaignRole is the role a user holds inside one campaign.
type CampaignRole string

const (
	CampaignRoleGM     CampaignRole = "GM"
	CampaignRolePlayer CampaignRole = "PLAYER"
)

// Valid reports whether the role is one of the known campaign roles.
func (r CampaignRole) Valid() bool {
	switch r {
	case CampaignRoleGM, CampaignRolePlayer:
		return true
	}
	return false
}

// CampaignMember links a user to a campaign with a per-campaign role.
// Identity is the (campaign, user) pair.
type CampaignMember struct {
	CampaignID uuid.UUID    `json:"campaign_id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID    `json:"user_id" gorm:"type:char(36);primaryKey"`
	Role       CampaignRole `json:"role" gorm:"size:20;not null"`
	JoinedAt   time.Time    `json:"joined_at" gorm:"autoCreateTime"`

	Campaign *Campaign `json:"-" gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	User     *User     `json:"-" gorm:"foreignKey:UserID"`
}
