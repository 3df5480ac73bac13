package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// Product is a print-shop catalog item (business cards, banners, flyers...).
// PublicVisible products are exposed on the customer-facing catalog.
type Product struct {
	shared.TenantAggregateRoot
	Code          string
	Name          string
	Description   string
	CategoryID    *uuid.UUID
	UnitPrice     decimal.Decimal
	Unit          string
	StockQuantity decimal.Decimal
	MinimumStock  decimal.Decimal
	Active        bool
	PublicVisible bool
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, code, name, unit string, unitPrice valueobject.Money) (*Product, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unit == "" {
		unit = "un"
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Unit:                unit,
		UnitPrice:           unitPrice.Amount(),
		StockQuantity:       decimal.Zero,
		MinimumStock:        decimal.Zero,
		Active:              true,
	}, nil
}

// UpdatePrice changes the unit price
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	p.UnitPrice = price.Amount()
	p.Touch()
	return nil
}

// SetDescription sets the product description (typed or AI-generated)
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.Touch()
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID uuid.UUID) {
	p.CategoryID = &categoryID
	p.Touch()
}

// SetPublicVisible toggles exposure on the public catalog
func (p *Product) SetPublicVisible(visible bool) {
	p.PublicVisible = visible
	p.Touch()
}

// Activate re-enables the product
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
}

// Deactivate hides the product from sale without deleting history
func (p *Product) Deactivate() {
	p.Active = false
	p.PublicVisible = false
	p.Touch()
}

// AdjustStock applies a signed stock delta. Negative results are rejected.
func (p *Product) AdjustStock(delta decimal.Decimal) error {
	next := p.StockQuantity.Add(delta)
	if next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	p.StockQuantity = next
	p.Touch()
	return nil
}

// BelowMinimum reports whether the stock fell under the configured minimum
func (p *Product) BelowMinimum() bool {
	return p.MinimumStock.IsPositive() && p.StockQuantity.LessThan(p.MinimumStock)
}
