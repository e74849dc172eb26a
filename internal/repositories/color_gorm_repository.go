package repositories

import (
	"context"
	"fmt"

	"selling/internal/models"

	"gorm.io/gorm"
)

// GORMColorRepository is a GORM implementation of ColorRepository.
type GORMColorRepository struct {
	db *gorm.DB
}

// NewGORMColorRepository creates a new instance of GORMColorRepository.
func NewGORMColorRepository(db *gorm.DB) *GORMColorRepository {
	return &GORMColorRepository{db: db}
}

// GetAll retrieves all colors ordered by id.
func (r *GORMColorRepository) GetAll(ctx context.Context) ([]models.Color, error) {
	colors := []models.Color{}
	if err := r.db.WithContext(ctx).Order("id").Find(&colors).Error; err != nil {
		return nil, fmt.Errorf("failed to get all colors: %w", err)
	}
	return colors, nil
}

// GetByID retrieves a single color.
func (r *GORMColorRepository) GetByID(ctx context.Context, id uint) (*models.Color, error) {
	var color models.Color
	if err := r.db.WithContext(ctx).First(&color, id).Error; err != nil {
		return nil, notFoundOr(err, "color", id)
	}
	return &color, nil
}

// Create inserts a color. CreatedAt is stamped by GORM.
func (r *GORMColorRepository) Create(ctx context.Context, color *models.Color) error {
	if err := r.db.WithContext(ctx).Create(color).Error; err != nil {
		return fmt.Errorf("failed to create color: %w", err)
	}
	return nil
}

// Update writes name and color code; the creation time is left untouched.
func (r *GORMColorRepository) Update(ctx context.Context, color *models.Color) error {
	res := r.db.WithContext(ctx).Model(&models.Color{ID: color.ID}).
		Select("name", "color_code").
		Updates(color)
	if res.Error != nil {
		return fmt.Errorf("failed to update color: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "color", color.ID)
	}
	return nil
}

// Delete removes a color after detaching it from its products.
func (r *GORMColorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_colors WHERE color_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to detach color %d: %w", id, err)
		}
		res := tx.Delete(&models.Color{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete color: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return notFoundOr(gorm.ErrRecordNotFound, "color", id)
		}
		return nil
	})
}
