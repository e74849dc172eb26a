package services

import (
	"context"
	"time"

	"selling/internal/models"
	"selling/internal/repositories"
)

// ProductInput carries the client-settable fields of a product. The SKU is
// not among them. A nil ColorIDs keeps the current colors on update; an
// empty one clears them.
type ProductInput struct {
	Title       string
	CategoryID  uint
	Description string
	IsActive    *bool
	ColorIDs    []uint
	UpdatedAt   *time.Time
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product owned by actorID. The SKU is derived
// from the title and the creation date while the row is inserted.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput, actorID uint) (*models.Product, error) {
	product := &models.Product{
		Title:       in.Title,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		IsActive:    boolOr(in.IsActive, true),
		CreatedByID: actorID,
		UpdatedByID: actorID,
	}
	if in.UpdatedAt != nil {
		product.UpdatedAt = *in.UpdatedAt
	}
	if err := s.repo.Create(ctx, product, in.ColorIDs); err != nil {
		return nil, err
	}
	publish(s.events, EventProductCreated, productEvent(product))
	return product, nil
}

// UpdateProduct applies in to an existing product and records actorID as the
// last updater. The SKU is left as it was assigned at creation.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in ProductInput, actorID uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	colorIDs := in.ColorIDs
	if colorIDs == nil {
		colorIDs = product.ColorIDs()
	}
	product.Title = in.Title
	product.CategoryID = in.CategoryID
	product.Description = in.Description
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.UpdatedAt != nil {
		product.UpdatedAt = *in.UpdatedAt
	}
	product.UpdatedByID = actorID
	product.Category = nil
	product.Colors = nil

	if err := s.repo.Update(ctx, product, colorIDs); err != nil {
		return nil, err
	}
	publish(s.events, EventProductUpdated, productEvent(product))
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(s.events, EventProductDeleted, map[string]interface{}{"id": id})
	return nil
}

func productEvent(p *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"sku":         p.SKU,
		"title":       p.Title,
		"category_id": p.CategoryID,
		"updated_by":  p.UpdatedByID,
	}
}
