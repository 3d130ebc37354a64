package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Feature icons understood by the public site.
const (
	FeatureIconHome = "home"
	FeatureIconLock = "lock"
	FeatureIconLeaf = "leaf"
	FeatureIconStar = "star"
)

type PropertyFeature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// Property is a listing row. GalleryURLs[0] is always the thumbnail.
type Property struct {
	ID           string                               `gorm:"type:char(36);primaryKey" json:"id"`
	Title        string                               `gorm:"size:255;not null" json:"title"`
	Location     string                               `gorm:"size:255;not null" json:"location"`
	Price        *float64                             `json:"price"`
	Currency     string                               `gorm:"size:3;default:'USD'" json:"currency"`
	Bedrooms     *int                                 `json:"bedrooms"`
	Bathrooms    *int                                 `json:"bathrooms"`
	Area         *string                              `gorm:"size:100" json:"area"`
	Category     *string                              `gorm:"size:100;index" json:"category"`
	Description  *string                              `gorm:"type:text" json:"description"`
	ThumbnailURL string                               `gorm:"size:1024;not null" json:"thumbnail_url"`
	GalleryURLs  datatypes.JSONSlice[string]          `json:"gallery_urls"`
	Features     datatypes.JSONSlice[PropertyFeature] `json:"features"`
	CreatedAt    time.Time                            `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time                            `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

func (p *Property) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
