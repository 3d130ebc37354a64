package repository

import (
	"context"
	"errors"

	"estatesite/internal/models"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// List returns every property, newest first.
func (r *PropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	var list []models.Property
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

// GetByID returns nil, nil when no row matches.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update writes the given columns. Nil pointer values in fields clear the column.
func (r *PropertyRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the row and reports whether it existed.
func (r *PropertyRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Property{})
	return res.RowsAffected > 0, res.Error
}
