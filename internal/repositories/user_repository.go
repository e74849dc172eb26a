package repositories

import (
	"context"

	"selling/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// Delete removes the user together with every sub-category and product
	// the user created or last updated.
	Delete(ctx context.Context, id uint) error
}
