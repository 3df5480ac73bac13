package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// Customer is a print-shop client
type Customer struct {
	shared.TenantAggregateRoot
	Name     string
	Email    string
	Phone    string
	Document string
	Notes    string
	Active   bool
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, name string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Active:              true,
	}, nil
}

// UpdateContact updates contact details
func (c *Customer) UpdateContact(email, phone string) {
	c.Email = email
	c.Phone = phone
	c.Touch()
}

// Deactivate hides the customer from pickers without deleting history
func (c *Customer) Deactivate() {
	c.Active = false
	c.Touch()
}

// CustomerRepository is the persistence port for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, int64, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
