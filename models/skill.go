package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Skill is one category card in the about section, e.g. "Backend Developer"
type Skill struct {
	ID        uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title     string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Icon      string                      `json:"icon" db:"icon" gorm:"type:text;not null"`
	Skills    datatypes.JSONSlice[string] `json:"skills" db:"skills" gorm:"not null"`
	Count     int                         `json:"count" db:"count" gorm:"not null;index"` // display order, ascending
	Featured  bool                        `json:"featured" db:"featured" gorm:"not null;index"`
	CreatedAt time.Time                   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time                   `json:"updatedAt" db:"updated_at"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
