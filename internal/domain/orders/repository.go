package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// Repository is the persistence port for the Order aggregate
type Repository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Order, error)
	FindByPublicToken(ctx context.Context, token string) (*Order, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, int64, error)
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus, filter shared.Filter) ([]Order, error)
	FindOpen(ctx context.Context, tenantID uuid.UUID) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
