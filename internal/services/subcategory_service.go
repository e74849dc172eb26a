package services

import (
	"context"
	"time"

	"selling/internal/models"
	"selling/internal/repositories"
)

// SubCategoryInput carries the client-settable fields of a sub-category.
// Nil pointers leave the stored value unchanged on update.
type SubCategoryInput struct {
	Name        string
	ShortName   string
	Image       *string
	Description string
	IsActive    *bool
	UpdatedAt   *time.Time
}

// SubCategoryService handles business logic related to sub-categories.
type SubCategoryService struct {
	repo   repositories.SubCategoryRepository
	events EventPublisher
	now    func() time.Time
}

// NewSubCategoryService creates a new SubCategoryService. events may be nil.
func NewSubCategoryService(repo repositories.SubCategoryRepository, events EventPublisher) *SubCategoryService {
	return &SubCategoryService{repo: repo, events: events, now: time.Now}
}

// GetAllSubCategories retrieves all sub-categories.
func (s *SubCategoryService) GetAllSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	return s.repo.GetAll(ctx)
}

// GetSubCategoryByID retrieves a single sub-category by its ID.
func (s *SubCategoryService) GetSubCategoryByID(ctx context.Context, id uint) (*models.SubCategory, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateSubCategory stores a new sub-category created by actorID, who is also
// recorded as its last updater.
func (s *SubCategoryService) CreateSubCategory(ctx context.Context, in SubCategoryInput, actorID uint) (*models.SubCategory, error) {
	sub := &models.SubCategory{
		Name:        in.Name,
		ShortName:   in.ShortName,
		Image:       in.Image,
		Description: in.Description,
		IsActive:    boolOr(in.IsActive, true),
		CreatedByID: actorID,
		UpdatedByID: actorID,
		UpdatedAt:   s.now(),
	}
	if in.UpdatedAt != nil {
		sub.UpdatedAt = *in.UpdatedAt
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateSubCategory applies in and records actorID as the last updater.
// updated_at only changes when in.UpdatedAt is set.
func (s *SubCategoryService) UpdateSubCategory(ctx context.Context, id uint, in SubCategoryInput, actorID uint) (*models.SubCategory, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Name = in.Name
	sub.ShortName = in.ShortName
	sub.Description = in.Description
	if in.Image != nil {
		sub.Image = in.Image
	}
	if in.IsActive != nil {
		sub.IsActive = *in.IsActive
	}
	if in.UpdatedAt != nil {
		sub.UpdatedAt = *in.UpdatedAt
	}
	sub.UpdatedByID = actorID

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubCategory deletes a sub-category together with its products.
func (s *SubCategoryService) DeleteSubCategory(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(s.events, EventSubCategoryDeleted, map[string]interface{}{"id": id})
	return nil
}
