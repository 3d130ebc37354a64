package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is one offering shown on /services, addressed publicly by Slug.
type Service struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Slug         string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Image        *string   `gorm:"size:1024" json:"image"`
	DisplayOrder int       `gorm:"default:0;index" json:"display_order"`
	IsActive     bool      `gorm:"index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
