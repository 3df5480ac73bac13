package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// TenantRepository is the persistence port for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
}

// UserRepository is the persistence port for users
type UserRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	FindByEmailAnyTenant(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, int64, error)
	CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
