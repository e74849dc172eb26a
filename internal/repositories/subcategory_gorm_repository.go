package repositories

import (
	"context"
	"errors"
	"fmt"

	"selling/internal/apperrors"
	"selling/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSubCategoryRepository is a GORM implementation of SubCategoryRepository.
type GORMSubCategoryRepository struct {
	db *gorm.DB
}

// NewGORMSubCategoryRepository creates a new instance of GORMSubCategoryRepository.
func NewGORMSubCategoryRepository(db *gorm.DB) *GORMSubCategoryRepository {
	return &GORMSubCategoryRepository{db: db}
}

// GetAll retrieves all sub-categories ordered by id.
func (r *GORMSubCategoryRepository) GetAll(ctx context.Context) ([]models.SubCategory, error) {
	subs := []models.SubCategory{}
	if err := r.db.WithContext(ctx).Order("id").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sub-categories: %w", err)
	}
	return subs, nil
}

// GetByID retrieves a single sub-category.
func (r *GORMSubCategoryRepository) GetByID(ctx context.Context, id uint) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, notFoundOr(err, "sub-category", id)
	}
	return &sub, nil
}

// Create inserts a sub-category after checking that the audit users exist.
func (r *GORMSubCategoryRepository) Create(ctx context.Context, sub *models.SubCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUsers(tx, map[string]uint{"created_by": sub.CreatedByID, "updated_by": sub.UpdatedByID}); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create sub-category: %w", err)
		}
		return nil
	})
}

// Update writes the mutable columns. created_at and created_by are kept.
func (r *GORMSubCategoryRepository) Update(ctx context.Context, sub *models.SubCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.SubCategory{}, sub.ID).Error; err != nil {
			return notFoundOr(err, "sub-category", sub.ID)
		}
		if err := checkUsers(tx, map[string]uint{"updated_by": sub.UpdatedByID}); err != nil {
			return err
		}
		err := tx.Model(&models.SubCategory{ID: sub.ID}).
			Select("name", "short_name", "image", "description", "is_active", "updated_by_id", "updated_at").
			Updates(sub).Error
		if err != nil {
			return fmt.Errorf("failed to update sub-category: %w", err)
		}
		return nil
	})
}

// Delete removes a sub-category and cascades to its products.
func (r *GORMSubCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.SubCategory{}, id).Error; err != nil {
			return notFoundOr(err, "sub-category", id)
		}
		if err := deleteProducts(tx, "category_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete products of sub-category %d: %w", id, err)
		}
		if err := tx.Delete(&models.SubCategory{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete sub-category: %w", err)
		}
		return nil
	})
}

// checkUsers reports a field error for every referenced user id that does
// not exist.
func checkUsers(tx *gorm.DB, refs map[string]uint) error {
	verr := &apperrors.ValidationError{}
	for field, id := range refs {
		err := tx.Select("id").First(&models.User{}, id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			verr.Add(field, invalidPK(id))
		case err != nil:
			return fmt.Errorf("failed to look up user %d: %w", id, err)
		}
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

func invalidPK(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
