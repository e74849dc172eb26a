package repositories

import (
	"context"

	"selling/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// Create inserts the product and attaches colorIDs. The SKU is derived
	// while inserting.
	Create(ctx context.Context, product *models.Product, colorIDs []uint) error
	// Update writes the mutable columns and replaces the color set. SKU,
	// creation time and creator are never changed.
	Update(ctx context.Context, product *models.Product, colorIDs []uint) error
	Delete(ctx context.Context, id uint) error
}
