package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalVisibility controls whether non-GM participants may read an entry.
type JournalVisibility string

const (
	VisibilityGMOnly  JournalVisibility = "GM_ONLY"
	VisibilityPlayers JournalVisibility = "PLAYERS"
)

// Valid reports whether the visibility is one of the known values.
func (v JournalVisibility) Valid() bool {
	switch v {
	case VisibilityGMOnly, VisibilityPlayers:
		return true
	}
	return false
}

// JournalEntry is a campaign log entry or, when CampaignID is nil, a
// personal note owned by its author. CreatedAt is server-assigned and
// immutable.
type JournalEntry struct {
	ID         uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	CampaignID *uuid.UUID        `json:"campaign_id,omitempty" gorm:"type:char(36);index:idx_journal_campaign_created"`
	AuthorID   uuid.UUID         `json:"author_id" gorm:"type:char(36);not null;index"`
	Type       string            `json:"type" gorm:"size:50;not null"`
	Visibility JournalVisibility `json:"visibility" gorm:"size:20;not null"`
	Title      string            `json:"title" gorm:"size:150;not null"`
	Content    string            `json:"content" gorm:"type:text"`
	Tags       string            `json:"tags,omitempty"`
	CreatedAt  time.Time         `json:"created_at" gorm:"index:idx_journal_campaign_created"`

	Campaign *Campaign `json:"-" gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	Author   *User     `json:"-" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate sets UUID before creating the record.
func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
