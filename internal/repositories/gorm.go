package repositories

import (
	"errors"

	"selling/internal/apperrors"

	"gorm.io/gorm"
)

// notFoundOr maps gorm.ErrRecordNotFound to apperrors.ErrNotFound and leaves
// other errors as they are.
func notFoundOr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity, id)
	}
	return err
}

// deleteProducts removes the products matched by query and their color
// associations.
func deleteProducts(tx *gorm.DB, query string, args ...interface{}) error {
	sub := tx.Table("products").Select("id").Where(query, args...)
	if err := tx.Exec("DELETE FROM product_colors WHERE product_id IN (?)", sub).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM products WHERE "+query, args...).Error
}
