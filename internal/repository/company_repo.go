package repository

import (
	"context"
	"errors"

	"estatesite/internal/models"

	"gorm.io/gorm"
)

// CompanyRepository reads and writes the singleton company_info row.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Get(ctx context.Context) (*models.CompanyInfo, error) {
	var c models.CompanyInfo
	err := r.db.WithContext(ctx).Where("id = ?", models.CompanyInfoID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) Update(ctx context.Context, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.CompanyInfo{}).Where("id = ?", models.CompanyInfoID).Updates(fields).Error
}
