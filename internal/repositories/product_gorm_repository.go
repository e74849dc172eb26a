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

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Colors", func(db *gorm.DB) *gorm.DB {
		return db.Order("colors.id")
	})
}

// GetAll retrieves all products with their category and colors.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := withRelations(r.db.WithContext(ctx)).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := withRelations(r.db.WithContext(ctx)).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product, colorIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		colors, err := r.checkReferences(tx, product, colorIDs, true)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &apperrors.UniquenessError{Field: "sku", Value: product.SKU, Err: err}
			}
			return fmt.Errorf("failed to create product: %w", err)
		}
		if len(colors) > 0 {
			if err := tx.Model(product).Association("Colors").Append(colors); err != nil {
				return fmt.Errorf("failed to attach colors: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.reload(ctx, product)
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product, colorIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Product{}, product.ID).Error; err != nil {
			return notFoundOr(err, "product", product.ID)
		}
		colors, err := r.checkReferences(tx, product, colorIDs, false)
		if err != nil {
			return err
		}

		err = tx.Model(&models.Product{ID: product.ID}).
			Select("title", "category_id", "description", "is_active", "updated_by_id", "updated_at").
			Updates(product).Error
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if err := tx.Model(&models.Product{ID: product.ID}).Association("Colors").Replace(colors); err != nil {
			return fmt.Errorf("failed to replace colors: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.reload(ctx, product)
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Product{}, id).Error; err != nil {
			return notFoundOr(err, "product", id)
		}
		if err := deleteProducts(tx, "id = ?", id); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// checkReferences verifies the category, the audit users and the colors a
// product points at, and returns the colors in the order of colorIDs.
func (r *GORMProductRepository) checkReferences(tx *gorm.DB, product *models.Product, colorIDs []uint, creating bool) ([]models.Color, error) {
	verr := &apperrors.ValidationError{}

	err := tx.Select("id").First(&models.SubCategory{}, product.CategoryID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		verr.Add("category", invalidPK(product.CategoryID))
	case err != nil:
		return nil, fmt.Errorf("failed to look up sub-category %d: %w", product.CategoryID, err)
	}

	users := map[string]uint{"updated_by": product.UpdatedByID}
	if creating {
		users["created_by"] = product.CreatedByID
	}
	if err := checkUsers(tx, users); err != nil {
		var uerr *apperrors.ValidationError
		if !errors.As(err, &uerr) {
			return nil, err
		}
		for field, msgs := range uerr.Fields {
			for _, m := range msgs {
				verr.Add(field, m)
			}
		}
	}

	colors := []models.Color{}
	if len(colorIDs) > 0 {
		var found []models.Color
		if err := tx.Where("id IN ?", colorIDs).Find(&found).Error; err != nil {
			return nil, fmt.Errorf("failed to look up colors: %w", err)
		}
		byID := make(map[uint]models.Color, len(found))
		for _, c := range found {
			byID[c.ID] = c
		}
		seen := make(map[uint]bool, len(colorIDs))
		for _, id := range colorIDs {
			c, ok := byID[id]
			if !ok {
				verr.Add("colors", invalidPK(id))
				continue
			}
			if !seen[id] {
				seen[id] = true
				colors = append(colors, c)
			}
		}
	}

	if !verr.Empty() {
		return nil, verr
	}
	return colors, nil
}

func (r *GORMProductRepository) reload(ctx context.Context, product *models.Product) error {
	fresh, err := r.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	*product = *fresh
	return nil
}
