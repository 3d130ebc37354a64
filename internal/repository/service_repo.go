package repository

import (
	"context"
	"errors"

	"estatesite/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) ListActive(ctx context.Context) ([]models.Service, error) {
	var list []models.Service
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("display_order ASC").Order("created_at ASC").Find(&list).Error
	return list, err
}

// ListAll includes inactive services for the dashboard.
func (r *ServiceRepository) ListAll(ctx context.Context) ([]models.Service, error) {
	var list []models.Service
	err := r.db.WithContext(ctx).Order("display_order ASC").Order("created_at ASC").Find(&list).Error
	return list, err
}

// GetBySlug only finds active services. Returns nil, nil when absent.
func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SlugExists ignores the service with exceptID so updates can keep their slug.
func (r *ServiceRepository) SlugExists(ctx context.Context, slug, exceptID string) (bool, error) {
	var c int64
	q := r.db.WithContext(ctx).Model(&models.Service{}).Where("slug = ?", slug)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&c).Error
	return c > 0, err
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{})
	return res.RowsAffected > 0, res.Error
}
