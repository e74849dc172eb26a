package repositories

import (
	"context"
	"errors"
	"fmt"

	"selling/internal/apperrors"
	"selling/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateField(db, user, err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// duplicateField works out which unique column rejected the insert.
func (r *GORMUserRepository) duplicateField(db *gorm.DB, user *models.User, cause error) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err == nil && count > 0 {
		return &apperrors.UniquenessError{Field: "email", Value: user.Email, Err: cause}
	}
	return &apperrors.UniquenessError{Field: "username", Value: user.Username, Err: cause}
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s: %w", username, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return &user, nil
}

// Delete removes a user and cascades to the entities that reference it.
func (r *GORMUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.User{}, id).Error; err != nil {
			return notFoundOr(err, "user", id)
		}

		owned := tx.Table("sub_categories").Select("id").
			Where("created_by_id = ? OR updated_by_id = ?", id, id)
		if err := deleteProducts(tx, "created_by_id = ? OR updated_by_id = ? OR category_id IN (?)", id, id, owned); err != nil {
			return fmt.Errorf("failed to delete products of user %d: %w", id, err)
		}
		if err := tx.Where("created_by_id = ? OR updated_by_id = ?", id, id).Delete(&models.SubCategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete sub-categories of user %d: %w", id, err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete user %d: %w", id, err)
		}
		return nil
	})
}
