package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a message left through the public contact form.
// Read only ever moves from false to true.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Phone     *string   `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Subject   string    `json:"subject" db:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	Read      bool      `json:"read" db:"read" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (c *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
