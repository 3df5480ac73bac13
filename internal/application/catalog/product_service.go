package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// DescriptionGenerator produces marketing copy for a product. Implemented by
// the AI client in infrastructure; a disabled deployment returns an error.
type DescriptionGenerator interface {
	GenerateDescription(ctx context.Context, productName, categoryName, keywords string) (string, error)
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	generator    DescriptionGenerator
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	generator DescriptionGenerator,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		generator:    generator,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if existing, err := s.productRepo.FindByCode(ctx, tenantID, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, tenantID, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	price := decimal.Zero
	if req.UnitPrice != nil {
		price = *req.UnitPrice
	}

	product, err := catalog.NewProduct(tenantID, req.Code, req.Name, req.Unit, valueobject.NewMoneyBRL(price))
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		product.SetDescription(req.Description)
	}
	if req.CategoryID != nil {
		product.SetCategory(*req.CategoryID)
	}
	if req.MinimumStock != nil {
		product.MinimumStock = *req.MinimumStock
	}
	product.SetPublicVisible(req.PublicVisible)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("code", product.Code))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out, total, nil
}

// ListPublic retrieves the tenant's public storefront products
func (s *ProductService) ListPublic(ctx context.Context, tenantID uuid.UUID) ([]PublicProductResponse, error) {
	products, err := s.productRepo.FindPublic(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]PublicProductResponse, len(products))
	for i := range products {
		out[i] = ToPublicProductResponse(&products[i])
	}
	return out, nil
}

// Update modifies a product
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		product.Name = *req.Name
		product.Touch()
	}
	if req.Description != nil {
		product.SetDescription(*req.Description)
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, tenantID, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(*req.CategoryID)
	}
	if req.UnitPrice != nil {
		if err := product.UpdatePrice(valueobject.NewMoneyBRL(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if req.MinimumStock != nil {
		if req.MinimumStock.IsNegative() {
			return nil, shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
		}
		product.MinimumStock = *req.MinimumStock
		product.Touch()
	}
	if req.PublicVisible != nil {
		product.SetPublicVisible(*req.PublicVisible)
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, tenantID, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, tenantID, productID)
}

// GenerateDescription asks the AI assistant for marketing copy and stores it
// on the product. The previous description is kept when generation fails.
func (s *ProductService) GenerateDescription(ctx context.Context, tenantID, productID uuid.UUID, req GenerateDescriptionRequest) (*GenerateDescriptionResponse, error) {
	if s.generator == nil {
		return nil, shared.NewDomainError("AI_DISABLED", "Description generation is not enabled")
	}

	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	categoryName := ""
	if product.CategoryID != nil {
		if category, err := s.categoryRepo.FindByID(ctx, tenantID, *product.CategoryID); err == nil {
			categoryName = category.Name
		}
	}

	description, err := s.generator.GenerateDescription(ctx, product.Name, categoryName, req.Keywords)
	if err != nil {
		s.logger.Warn("Description generation failed",
			zap.String("product_id", productID.String()), zap.Error(err))
		return nil, shared.NewDomainError("AI_UNAVAILABLE", "Description generation is temporarily unavailable")
	}

	product.SetDescription(description)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return &GenerateDescriptionResponse{Description: description}, nil
}
