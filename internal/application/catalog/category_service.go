package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/shared"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a category
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(tenantID, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves the tenant's categories
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out, nil
}

// Rename changes a category name
func (s *CategoryService) Rename(ctx context.Context, tenantID, categoryID uuid.UUID, name string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, tenantID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := category.Rename(name); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, tenantID, categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, tenantID, categoryID); err != nil {
		return shared.NewDomainError("CATEGORY_IN_USE", "Cannot delete a category that has products")
	}
	return nil
}
