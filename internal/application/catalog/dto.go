package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code          string           `json:"code" binding:"required,min=1,max=50"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=2000"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	Unit          string           `json:"unit" binding:"max=20"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	MinimumStock  *decimal.Decimal `json:"minimum_stock"`
	PublicVisible bool             `json:"public_visible"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=2000"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	MinimumStock  *decimal.Decimal `json:"minimum_stock"`
	PublicVisible *bool            `json:"public_visible"`
	Active        *bool            `json:"active"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
	BelowMinimum  bool            `json:"below_minimum"`
	Active        bool            `json:"active"`
	PublicVisible bool            `json:"public_visible"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PublicProductResponse is the reduced shape exposed on the public catalog
type PublicProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// GenerateDescriptionRequest asks the AI assistant for a product description
type GenerateDescriptionRequest struct {
	Keywords string `json:"keywords" binding:"max=500"`
}

// GenerateDescriptionResponse carries the generated text back to the client
type GenerateDescriptionResponse struct {
	Description string `json:"description"`
}

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		Unit:          p.Unit,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		BelowMinimum:  p.BelowMinimum(),
		Active:        p.Active,
		PublicVisible: p.PublicVisible,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToPublicProductResponse converts a domain Product to its public shape
func ToPublicProductResponse(p *catalog.Product) PublicProductResponse {
	return PublicProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		CategoryID:  p.CategoryID,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}
