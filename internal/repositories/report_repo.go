package repositories

import (
	"context"
	"fmt"
	"strings"

	"selling/internal/models"

	"gorm.io/gorm"
)

// ReportRepository runs the read-only reporting queries.
type ReportRepository interface {
	// TopCategories returns the limit sub-categories with the most products.
	TopCategories(ctx context.Context, limit int) ([]models.CategoryCount, error)
	// SearchProducts returns the products whose sku, title or description
	// contains term, ignoring case.
	SearchProducts(ctx context.Context, term string) ([]models.ProductSearchResult, error)
}

// GORMReportRepository is a GORM implementation of ReportRepository.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{db: db}
}

// TopCategories counts products per sub-category, categories without
// products included. Equal counts are ordered by sub-category id.
func (r *GORMReportRepository) TopCategories(ctx context.Context, limit int) ([]models.CategoryCount, error) {
	rows := []models.CategoryCount{}
	err := r.db.WithContext(ctx).
		Model(&models.SubCategory{}).
		Select("sub_categories.id, sub_categories.name, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = sub_categories.id").
		Group("sub_categories.id, sub_categories.name").
		Order("product_count DESC, sub_categories.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count products per category: %w", err)
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchProducts matches term literally: LIKE wildcards in it are escaped.
// Both sides are folded by the database's LOWER so they always agree.
func (r *GORMReportRepository) SearchProducts(ctx context.Context, term string) ([]models.ProductSearchResult, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"

	rows := []models.ProductSearchResult{}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.title, sub_categories.name AS category, products.description, products.sku, users.username AS created_by").
		Joins("JOIN sub_categories ON sub_categories.id = products.category_id").
		Joins("JOIN users ON users.id = products.created_by_id").
		Where(`LOWER(products.sku) LIKE LOWER(?) ESCAPE '\' OR LOWER(products.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(products.description) LIKE LOWER(?) ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("products.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return rows, nil
}
