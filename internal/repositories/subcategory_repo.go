package repositories

import (
	"context"

	"selling/internal/models"
)

// SubCategoryRepository defines the interface for sub-category data access.
type SubCategoryRepository interface {
	GetAll(ctx context.Context) ([]models.SubCategory, error)
	GetByID(ctx context.Context, id uint) (*models.SubCategory, error)
	Create(ctx context.Context, sub *models.SubCategory) error
	Update(ctx context.Context, sub *models.SubCategory) error
	// Delete removes the sub-category and all of its products.
	Delete(ctx context.Context, id uint) error
}
