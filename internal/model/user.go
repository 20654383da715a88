package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GlobalRole is a system-wide role attached to a user account.
type GlobalRole string

const (
	RolePlayer     GlobalRole = "PLAYER"
	RoleGameMaster GlobalRole = "GAME_MASTER"
	RoleAdmin      GlobalRole = "ADMIN"
)

// Valid reports whether the role is one of the known global roles.
func (r GlobalRole) Valid() bool {
	switch r {
	case RolePlayer, RoleGameMaster, RoleAdmin:
		return true
	}
	return false
}

// RoleSet is the set of global roles held by a user, stored as a
// comma-separated column.
type RoleSet []GlobalRole

// Has reports whether the set contains the given role.
func (s RoleSet) Has(role GlobalRole) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (s RoleSet) Value() (driver.Value, error) {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (s *RoleSet) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("unsupported role set type %T", src)
	}
	*s = nil
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, GlobalRole(part))
		}
	}
	return nil
}

// User represents a registered account in the system.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:30;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Roles        RoleSet   `json:"roles" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
