package catalog

import (
	"github.com/google/uuid"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// Category groups products for the catalog and the public storefront
type Category struct {
	shared.TenantAggregateRoot
	Name   string
	Active bool
}

// NewCategory creates a new category
func NewCategory(tenantID uuid.UUID, name string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Active:              true,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Touch()
	return nil
}

// Deactivate hides the category
func (c *Category) Deactivate() {
	c.Active = false
	c.Touch()
}
