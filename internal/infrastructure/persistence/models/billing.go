package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/billing"
)

// PlanModel is the persistence model for subscription plans
type PlanModel struct {
	AggregateModel
	Code       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string          `gorm:"type:varchar(100);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PeriodDays int             `gorm:"not null;default:30"`
	MaxUsers   int             `gorm:"not null;default:0"`
	Active     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// ToDomain converts the persistence model to a domain Plan
func (m *PlanModel) ToDomain() *billing.Plan {
	plan := &billing.Plan{
		Code:       m.Code,
		Name:       m.Name,
		Price:      m.Price,
		PeriodDays: m.PeriodDays,
		MaxUsers:   m.MaxUsers,
		Active:     m.Active,
	}
	m.PopulateAggregateRoot(&plan.BaseAggregateRoot)
	return plan
}

// FromDomain populates the persistence model from a domain Plan
func (m *PlanModel) FromDomain(p *billing.Plan) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Price = p.Price
	m.PeriodDays = p.PeriodDays
	m.MaxUsers = p.MaxUsers
	m.Active = p.Active
}

// PlanModelFromDomain creates a persistence model from a domain Plan
func PlanModelFromDomain(p *billing.Plan) *PlanModel {
	m := &PlanModel{}
	m.FromDomain(p)
	return m
}

// SubscriptionModel is the persistence model for tenant subscriptions
type SubscriptionModel struct {
	AggregateModel
	TenantID              uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex"`
	PlanID                uuid.UUID                  `gorm:"type:uuid;not null"`
	Status                billing.SubscriptionStatus `gorm:"type:varchar(20);not null;default:'trial'"`
	GatewayCustomerID     string                     `gorm:"type:varchar(100);index"`
	GatewaySubscriptionID string                     `gorm:"type:varchar(100);index"`
	PaidThrough           time.Time                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription
func (m *SubscriptionModel) ToDomain() *billing.Subscription {
	subscription := &billing.Subscription{
		TenantID:              m.TenantID,
		PlanID:                m.PlanID,
		Status:                m.Status,
		GatewayCustomerID:     m.GatewayCustomerID,
		GatewaySubscriptionID: m.GatewaySubscriptionID,
		PaidThrough:           m.PaidThrough,
	}
	m.PopulateAggregateRoot(&subscription.BaseAggregateRoot)
	return subscription
}

// FromDomain populates the persistence model from a domain Subscription
func (m *SubscriptionModel) FromDomain(s *billing.Subscription) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.TenantID = s.TenantID
	m.PlanID = s.PlanID
	m.Status = s.Status
	m.GatewayCustomerID = s.GatewayCustomerID
	m.GatewaySubscriptionID = s.GatewaySubscriptionID
	m.PaidThrough = s.PaidThrough
}

// SubscriptionModelFromDomain creates a persistence model from a domain Subscription
func SubscriptionModelFromDomain(s *billing.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{}
	m.FromDomain(s)
	return m
}

// WebhookEventModel is the persistence model for processed webhook events.
// The unique index on EventID is what makes replay detection work.
type WebhookEventModel struct {
	AggregateModel
	EventID     string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	EventType   string    `gorm:"type:varchar(100)"`
	Payload     string    `gorm:"type:text"`
	ProcessedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WebhookEventModel) TableName() string {
	return "webhook_events"
}

// ToDomain converts the persistence model to a domain WebhookEvent
func (m *WebhookEventModel) ToDomain() *billing.WebhookEvent {
	event := &billing.WebhookEvent{
		EventID:     m.EventID,
		EventType:   m.EventType,
		Payload:     m.Payload,
		ProcessedAt: m.ProcessedAt,
	}
	m.PopulateAggregateRoot(&event.BaseAggregateRoot)
	return event
}

// FromDomain populates the persistence model from a domain WebhookEvent
func (m *WebhookEventModel) FromDomain(e *billing.WebhookEvent) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.EventID = e.EventID
	m.EventType = e.EventType
	m.Payload = e.Payload
	m.ProcessedAt = e.ProcessedAt
}

// WebhookEventModelFromDomain creates a persistence model from a domain WebhookEvent
func WebhookEventModelFromDomain(e *billing.WebhookEvent) *WebhookEventModel {
	m := &WebhookEventModel{}
	m.FromDomain(e)
	return m
}
