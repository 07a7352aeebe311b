package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Category groups projects on the landing page
type Category string

const (
	CategoryWeb    Category = "web"
	CategoryMobile Category = "mobile"
	CategoryAI     Category = "ai"
	CategoryData   Category = "data"
	CategoryOther  Category = "other"
)

// Categories lists every accepted project category
var Categories = []Category{CategoryWeb, CategoryMobile, CategoryAI, CategoryData, CategoryOther}

// ParseCategory resolves a category name. The empty string means web.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryWeb, true
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Project represents a portfolio project with its showcase metadata
type Project struct {
	ID                  uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title               string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Name                string                      `json:"name" db:"name" gorm:"type:text;not null;index"`
	Description         string                      `json:"description" db:"description" gorm:"type:text;not null"`
	DetailedDescription string                      `json:"detailedDescription" db:"detailed_description" gorm:"type:text;not null"`
	TechStack           datatypes.JSONSlice[string] `json:"techStack" db:"tech_stack" gorm:"not null"`
	Images              datatypes.JSONSlice[string] `json:"images" db:"images" gorm:"not null"`
	GithubURL           *string                     `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	LiveURL             *string                     `json:"liveUrl,omitempty" db:"live_url" gorm:"type:text"`
	Featured            bool                        `json:"featured" db:"featured" gorm:"not null"`
	Category            Category                    `json:"category" db:"category" gorm:"type:text;not null;index"`
	CreatedAt           time.Time                   `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt           time.Time                   `json:"updatedAt" db:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CleanStrings trims every entry and drops the blank ones, keeping order.
func CleanStrings(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// OptionalString trims s and returns nil when nothing is left.
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
