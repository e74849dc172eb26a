package services_test

import (
	"context"

	"selling/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product, colorIDs []uint) error {
	args := m.Called(ctx, product, colorIDs)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product, colorIDs []uint) error {
	args := m.Called(ctx, product, colorIDs)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockColorRepository is a mock implementation of repositories.ColorRepository
type MockColorRepository struct {
	mock.Mock
}

func (m *MockColorRepository) GetAll(ctx context.Context) ([]models.Color, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Color), args.Error(1)
}

func (m *MockColorRepository) GetByID(ctx context.Context, id uint) (*models.Color, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Color), args.Error(1)
}

func (m *MockColorRepository) Create(ctx context.Context, color *models.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *MockColorRepository) Update(ctx context.Context, color *models.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *MockColorRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubCategoryRepository is a mock implementation of repositories.SubCategoryRepository
type MockSubCategoryRepository struct {
	mock.Mock
}

func (m *MockSubCategoryRepository) GetAll(ctx context.Context) ([]models.SubCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubCategory), args.Error(1)
}

func (m *MockSubCategoryRepository) GetByID(ctx context.Context, id uint) (*models.SubCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubCategory), args.Error(1)
}

func (m *MockSubCategoryRepository) Create(ctx context.Context, sub *models.SubCategory) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubCategoryRepository) Update(ctx context.Context, sub *models.SubCategory) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubCategoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReportRepository is a mock implementation of repositories.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) TopCategories(ctx context.Context, limit int) ([]models.CategoryCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryCount), args.Error(1)
}

func (m *MockReportRepository) SearchProducts(ctx context.Context, term string) ([]models.ProductSearchResult, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductSearchResult), args.Error(1)
}

// MockPublisher records published catalog events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(event string, payload interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}
