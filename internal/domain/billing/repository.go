package billing

import (
	"context"

	"github.com/google/uuid"
)

// PlanRepository is the persistence port for plans
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	FindByCode(ctx context.Context, code string) (*Plan, error)
	FindActive(ctx context.Context) ([]Plan, error)
	Save(ctx context.Context, plan *Plan) error
}

// SubscriptionRepository is the persistence port for subscriptions
type SubscriptionRepository interface {
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)
	FindByGatewayCustomerID(ctx context.Context, customerID string) (*Subscription, error)
	FindByGatewaySubscriptionID(ctx context.Context, subscriptionID string) (*Subscription, error)
	Save(ctx context.Context, subscription *Subscription) error
}

// WebhookEventRepository records processed webhook events for idempotency.
// Insert must fail with shared.ErrAlreadyExists on a duplicate event id.
type WebhookEventRepository interface {
	Insert(ctx context.Context, event *WebhookEvent) error
}
