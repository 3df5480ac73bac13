package identity

import (
	"regexp"

	"github.com/graficaerp/backend/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Tenant is one print-shop company. The slug identifies the tenant on the
// public catalog/checkout routes.
type Tenant struct {
	shared.BaseAggregateRoot
	Name     string
	Slug     string
	Document string
	Phone    string
	Active   bool
}

// NewTenant creates a new active tenant
func NewTenant(name, slug string) (*Tenant, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase letters, digits and hyphens")
	}
	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Active:            true,
	}, nil
}

// Suspend blocks the tenant (billing failure)
func (t *Tenant) Suspend() {
	t.Active = false
	t.Touch()
}

// Activate re-enables the tenant
func (t *Tenant) Activate() {
	t.Active = true
	t.Touch()
}
