package services

import (
	"context"

	"selling/internal/models"
	"selling/internal/repositories"
)

// ColorInput carries the client-settable fields of a color.
type ColorInput struct {
	Name      string
	ColorCode string
}

// ColorService handles business logic related to colors.
type ColorService struct {
	repo repositories.ColorRepository
}

// NewColorService creates a new ColorService.
func NewColorService(repo repositories.ColorRepository) *ColorService {
	return &ColorService{repo: repo}
}

// GetAllColors retrieves all colors.
func (s *ColorService) GetAllColors(ctx context.Context) ([]models.Color, error) {
	return s.repo.GetAll(ctx)
}

// GetColorByID retrieves a single color by its ID.
func (s *ColorService) GetColorByID(ctx context.Context, id uint) (*models.Color, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateColor creates a new color.
func (s *ColorService) CreateColor(ctx context.Context, in ColorInput) (*models.Color, error) {
	color := &models.Color{Name: in.Name, ColorCode: in.ColorCode}
	if err := s.repo.Create(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// UpdateColor replaces the name and code of an existing color.
func (s *ColorService) UpdateColor(ctx context.Context, id uint, in ColorInput) (*models.Color, error) {
	color, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	color.Name = in.Name
	color.ColorCode = in.ColorCode
	if err := s.repo.Update(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// DeleteColor deletes a color; products using it only lose the association.
func (s *ColorService) DeleteColor(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
