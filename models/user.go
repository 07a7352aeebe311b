package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account allowed to sign in to the dashboard.
// PasswordHash is a bcrypt hash and never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Role         Role      `json:"role" db:"role" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
