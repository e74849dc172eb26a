package repositories

import (
	"context"

	"selling/internal/models"
)

// ColorRepository defines the interface for color data access.
type ColorRepository interface {
	GetAll(ctx context.Context) ([]models.Color, error)
	GetByID(ctx context.Context, id uint) (*models.Color, error)
	Create(ctx context.Context, color *models.Color) error
	Update(ctx context.Context, color *models.Color) error
	// Delete removes the color and detaches it from every product.
	Delete(ctx context.Context, id uint) error
}
