package services

import (
	"context"

	"selling/internal/models"
	"selling/internal/repositories"
)

// TopCategoriesLimit is the number of categories in the top categories report.
const TopCategoriesLimit = 3

// ReportService runs the read-only reporting queries.
type ReportService struct {
	repo repositories.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// TopCategories returns the three sub-categories with the most products.
func (s *ReportService) TopCategories(ctx context.Context) ([]models.CategoryCount, error) {
	return s.repo.TopCategories(ctx, TopCategoriesLimit)
}

// SearchProducts returns every product whose SKU, title or description
// contains term, ignoring case. An empty term matches all products.
func (s *ReportService) SearchProducts(ctx context.Context, term string) ([]models.ProductSearchResult, error) {
	return s.repo.SearchProducts(ctx, term)
}
