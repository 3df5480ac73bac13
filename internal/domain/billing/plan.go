package billing

import (
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// DefaultPeriodDays is the billing period applied when neither the webhook
// payload nor the plan specifies one.
const DefaultPeriodDays = 30

// Plan is a subscription tier offered to tenants
type Plan struct {
	shared.BaseAggregateRoot
	Code       string
	Name       string
	Price      decimal.Decimal
	PeriodDays int
	MaxUsers   int
	Active     bool
}

// NewPlan creates a plan
func NewPlan(code, name string, price decimal.Decimal, periodDays, maxUsers int) (*Plan, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Plan code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Plan price cannot be negative")
	}
	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}

	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Price:             price,
		PeriodDays:        periodDays,
		MaxUsers:          maxUsers,
		Active:            true,
	}, nil
}

// IsFree reports whether the plan is the free tier
func (p *Plan) IsFree() bool {
	return p.Price.IsZero()
}
