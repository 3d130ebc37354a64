package repository

import (
	"context"
	"errors"

	"estatesite/internal/models"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) ListActive(ctx context.Context) ([]models.ContactInfo, error) {
	var list []models.ContactInfo
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("display_order ASC").Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *ContactRepository) ListAll(ctx context.Context) ([]models.ContactInfo, error) {
	var list []models.ContactInfo
	err := r.db.WithContext(ctx).Order("display_order ASC").Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.ContactInfo, error) {
	var c models.ContactInfo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *models.ContactInfo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContactRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.ContactInfo{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactInfo{})
	return res.RowsAffected > 0, res.Error
}
