package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/billing"
)

// PlanResponse represents a subscription plan in API responses
type PlanResponse struct {
	ID         uuid.UUID       `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	PeriodDays int             `json:"period_days"`
	MaxUsers   int             `json:"max_users"`
}

// SubscriptionResponse represents the tenant's subscription state
type SubscriptionResponse struct {
	ID          uuid.UUID  `json:"id"`
	PlanID      uuid.UUID  `json:"plan_id"`
	PlanCode    string     `json:"plan_code,omitempty"`
	Status      string    `json:"status"`
	PaidThrough time.Time `json:"paid_through"`
	Current     bool      `json:"current"`
}

// StartCheckoutRequest starts a gateway checkout for a paid plan
type StartCheckoutRequest struct {
	PlanCode string `json:"plan_code" binding:"required"`
}

// StartCheckoutResponse carries the hosted payment page URL
type StartCheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// WebhookResult reports how an incoming gateway event was handled
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Duplicate bool   `json:"duplicate"`
	Handled   bool   `json:"handled"`
}

// ToPlanResponse converts a domain Plan to PlanResponse
func ToPlanResponse(p *billing.Plan) PlanResponse {
	return PlanResponse{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		Price:      p.Price,
		PeriodDays: p.PeriodDays,
		MaxUsers:   p.MaxUsers,
	}
}

// ToSubscriptionResponse converts a domain Subscription to SubscriptionResponse
func ToSubscriptionResponse(s *billing.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          s.ID,
		PlanID:      s.PlanID,
		Status:      string(s.Status),
		PaidThrough: s.PaidThrough,
		Current:     s.IsCurrent(),
	}
}
