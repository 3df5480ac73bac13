package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// SubscriptionStatus is the lifecycle status of a tenant subscription
type SubscriptionStatus string

const (
	SubscriptionTrial        SubscriptionStatus = "trial"
	SubscriptionAtiva        SubscriptionStatus = "ativa"
	SubscriptionInadimplente SubscriptionStatus = "inadimplente"
	SubscriptionCancelada    SubscriptionStatus = "cancelada"
)

// Subscription links a tenant to a plan and tracks the paid-through date
// reconciled from gateway webhooks.
type Subscription struct {
	shared.BaseAggregateRoot
	TenantID              uuid.UUID
	PlanID                uuid.UUID
	Status                SubscriptionStatus
	GatewayCustomerID     string
	GatewaySubscriptionID string
	PaidThrough           time.Time
}

// NewSubscription starts a trial subscription for a tenant
func NewSubscription(tenantID, planID uuid.UUID, trialDays int) (*Subscription, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}
	if trialDays < 0 {
		trialDays = 0
	}

	return &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		PlanID:            planID,
		Status:            SubscriptionTrial,
		PaidThrough:       time.Now().AddDate(0, 0, trialDays),
	}, nil
}

// LinkGateway stores the gateway-side identifiers once checkout completes
func (s *Subscription) LinkGateway(customerID, subscriptionID string) {
	if customerID != "" {
		s.GatewayCustomerID = customerID
	}
	if subscriptionID != "" {
		s.GatewaySubscriptionID = subscriptionID
	}
	s.Touch()
}

// ExtendPaidThrough advances the paid-through date by days and activates the
// subscription. The extension base is whichever is later: now or the current
// paid-through date, so a payment on an unexpired subscription accrues.
func (s *Subscription) ExtendPaidThrough(days int) error {
	if days <= 0 {
		return shared.NewDomainError("INVALID_PERIOD", "Extension days must be positive")
	}
	base := time.Now()
	if s.PaidThrough.After(base) {
		base = s.PaidThrough
	}
	s.PaidThrough = base.AddDate(0, 0, days)
	s.Status = SubscriptionAtiva
	s.Touch()
	return nil
}

// SetPaidThrough pins the paid-through date reported by the gateway
func (s *Subscription) SetPaidThrough(until time.Time) error {
	if until.IsZero() {
		return shared.NewDomainError("INVALID_PERIOD", "Paid-through date cannot be zero")
	}
	s.PaidThrough = until
	s.Status = SubscriptionAtiva
	s.Touch()
	return nil
}

// MarkPastDue flags a failed renewal payment
func (s *Subscription) MarkPastDue() {
	if s.Status != SubscriptionCancelada {
		s.Status = SubscriptionInadimplente
		s.Touch()
	}
}

// Cancel ends the subscription; access runs until PaidThrough
func (s *Subscription) Cancel() {
	s.Status = SubscriptionCancelada
	s.Touch()
}

// ChangePlan moves the subscription to another plan
func (s *Subscription) ChangePlan(planID uuid.UUID) error {
	if planID == uuid.Nil {
		return shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}
	s.PlanID = planID
	s.Touch()
	return nil
}

// IsCurrent reports whether the subscription grants access right now
func (s *Subscription) IsCurrent() bool {
	if s.Status == SubscriptionCancelada && time.Now().After(s.PaidThrough) {
		return false
	}
	return time.Now().Before(s.PaidThrough) || s.Status == SubscriptionAtiva
}
