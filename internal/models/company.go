package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyInfoID is the id of the single company_info row.
const CompanyInfoID = "00000000-0000-0000-0000-000000000001"

type CompanyInfo struct {
	ID               string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Tagline          *string   `gorm:"size:255" json:"tagline"`
	Phone            *string   `gorm:"size:50" json:"phone"`
	Email            *string   `gorm:"size:255" json:"email"`
	CalendlyLink     *string   `gorm:"size:512" json:"calendly_link"`
	Founded          *string   `gorm:"size:50" json:"founded"`
	Locations        *string   `gorm:"type:text" json:"locations"`
	Vision           *string   `gorm:"type:text" json:"vision"`
	Mission          *string   `gorm:"type:text" json:"mission"`
	Purpose          *string   `gorm:"type:text" json:"purpose"`
	DesignPhilosophy *string   `gorm:"type:text" json:"design_philosophy"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (CompanyInfo) TableName() string {
	return "company_info"
}

// Contact types shown on /contacts. Other values are allowed.
const (
	ContactTypePhone   = "phone"
	ContactTypeEmail   = "email"
	ContactTypeAddress = "address"
	ContactTypeSocial  = "social"
)

type ContactInfo struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Type         string    `gorm:"size:50;not null" json:"type"`
	Label        *string   `gorm:"size:255" json:"label"`
	Value        string    `gorm:"size:512;not null" json:"value"`
	DisplayOrder int       `gorm:"default:0;index" json:"display_order"`
	IsPrimary    bool      `json:"is_primary"`
	IsActive     bool      `gorm:"index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

func (c *ContactInfo) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
