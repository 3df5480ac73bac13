package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// ProductRepository is the persistence port for products
type ProductRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Product, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, int64, error)
	FindPublic(ctx context.Context, tenantID uuid.UUID) ([]Product, error)
	FindBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// CategoryRepository is the persistence port for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
