package billing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/billing"
	"github.com/graficaerp/backend/internal/domain/identity"
	"github.com/graficaerp/backend/internal/domain/shared"
)

// WebhookService processes gateway notifications. Events are deduplicated by
// inserting the event id under a unique constraint, so a replayed delivery is
// acknowledged without touching the subscription again.
type WebhookService struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	eventRepo        billing.WebhookEventRepository
	tenantRepo       identity.TenantRepository
	gateway          Gateway
	graceDays        int
	logger           *zap.Logger
}

// WebhookServiceConfig tunes billing enforcement
type WebhookServiceConfig struct {
	// GraceDays is how long a tenant keeps access past the paid-through
	// date before a payment failure or cancellation suspends it.
	GraceDays int
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	eventRepo billing.WebhookEventRepository,
	tenantRepo identity.TenantRepository,
	gateway Gateway,
	cfg WebhookServiceConfig,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		eventRepo:        eventRepo,
		tenantRepo:       tenantRepo,
		gateway:          gateway,
		graceDays:        cfg.GraceDays,
		logger:           logger,
	}
}

// webhookPayload tolerates the field-name variants the gateway has shipped
// over time. Unknown fields are ignored.
type webhookPayload struct {
	raw map[string]json.RawMessage
}

// Process verifies, deduplicates and applies one gateway event. The raw body
// is passed untouched because the signature covers the exact bytes.
func (s *WebhookService) Process(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	if err := s.gateway.VerifySignature(body, signature); err != nil {
		s.logger.Warn("Webhook signature rejected", zap.Error(err))
		return nil, shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed")
	}

	payload, err := parseWebhookPayload(body)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Webhook payload is not valid JSON")
	}

	eventID := payload.str("id", "event_id", "eventId")
	eventType := payload.str("type", "event_type", "eventType")
	if eventID == "" {
		return nil, shared.NewDomainError("INVALID_EVENT", "Webhook event id cannot be empty")
	}

	event, err := billing.NewWebhookEvent(eventID, eventType, string(body))
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Insert(ctx, event); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Info("Duplicate webhook event ignored", zap.String("event_id", eventID))
			return &WebhookResult{EventID: eventID, EventType: eventType, Duplicate: true}, nil
		}
		return nil, err
	}

	result := &WebhookResult{EventID: eventID, EventType: eventType}

	data := payload.object("data", "object", "payload")
	if data == nil {
		// some gateway versions ship the fields at the top level
		data = payload
	}
	subscription, err := s.resolveSubscription(ctx, data)
	if err != nil {
		// unknown subscription: the event is stored and acknowledged so the
		// gateway stops retrying, but nothing is applied
		s.logger.Warn("Webhook event for unknown subscription",
			zap.String("event_id", eventID), zap.String("event_type", eventType))
		return result, nil
	}

	switch normalizeEventType(eventType) {
	case eventPaid:
		err = s.applyPaid(ctx, subscription, data)
		result.Handled = err == nil
	case eventPaymentFailed:
		subscription.MarkPastDue()
		if err = s.subscriptionRepo.Save(ctx, subscription); err == nil {
			err = s.suspendIfLapsed(ctx, subscription)
		}
		result.Handled = err == nil
	case eventCanceled:
		subscription.Cancel()
		if err = s.subscriptionRepo.Save(ctx, subscription); err == nil {
			err = s.suspendIfLapsed(ctx, subscription)
		}
		result.Handled = err == nil
	default:
		s.logger.Info("Unhandled webhook event type",
			zap.String("event_id", eventID), zap.String("event_type", eventType))
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Webhook event processed",
		zap.String("event_id", eventID),
		zap.String("event_type", eventType),
		zap.Bool("handled", result.Handled))
	return result, nil
}

func (s *WebhookService) applyPaid(ctx context.Context, subscription *billing.Subscription, data *webhookPayload) error {
	subscription.LinkGateway(
		data.str("customer", "customer_id", "customerId"),
		data.str("subscription", "subscription_id", "subscriptionId"),
	)

	// the plan switch deferred at checkout lands here, once the gateway
	// confirms the first payment of the new plan
	if code := data.str("plan", "plan_code", "planCode"); code != "" {
		plan, err := s.planRepo.FindByCode(ctx, code)
		if err != nil {
			s.logger.Warn("Paid event references an unknown plan", zap.String("plan_code", code))
		} else if plan.ID != subscription.PlanID {
			if err := subscription.ChangePlan(plan.ID); err != nil {
				return err
			}
		}
	}

	if until, ok := data.timeValue("paid_until", "paidUntil", "current_period_end"); ok {
		if err := subscription.SetPaidThrough(until); err != nil {
			return err
		}
	} else {
		days := data.intValue("period_days", "periodDays")
		if days <= 0 {
			days = s.planPeriodDays(ctx, subscription.PlanID)
		}
		if err := subscription.ExtendPaidThrough(days); err != nil {
			return err
		}
	}

	if err := s.subscriptionRepo.Save(ctx, subscription); err != nil {
		return err
	}

	// a suspended tenant comes back as soon as the payment lands
	tenant, err := s.tenantRepo.FindByID(ctx, subscription.TenantID)
	if err != nil {
		return err
	}
	if !tenant.Active {
		tenant.Activate()
		if err := s.tenantRepo.Save(ctx, tenant); err != nil {
			return err
		}
	}
	return nil
}

// suspendIfLapsed blocks the tenant once the paid-through date plus the
// grace period has passed. Access already paid for runs until then, even
// after a failure or cancellation.
func (s *WebhookService) suspendIfLapsed(ctx context.Context, subscription *billing.Subscription) error {
	if time.Now().Before(subscription.PaidThrough.AddDate(0, 0, s.graceDays)) {
		return nil
	}
	tenant, err := s.tenantRepo.FindByID(ctx, subscription.TenantID)
	if err != nil {
		return err
	}
	if !tenant.Active {
		return nil
	}
	tenant.Suspend()
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return err
	}
	s.logger.Warn("Tenant suspended after grace period",
		zap.String("tenant_id", tenant.ID.String()),
		zap.Time("paid_through", subscription.PaidThrough))
	return nil
}

func (s *WebhookService) planPeriodDays(ctx context.Context, planID uuid.UUID) int {
	if plan, err := s.planRepo.FindByID(ctx, planID); err == nil && plan.PeriodDays > 0 {
		return plan.PeriodDays
	}
	return billing.DefaultPeriodDays
}

func (s *WebhookService) resolveSubscription(ctx context.Context, data *webhookPayload) (*billing.Subscription, error) {
	if id := data.str("subscription", "subscription_id", "subscriptionId"); id != "" {
		if sub, err := s.subscriptionRepo.FindByGatewaySubscriptionID(ctx, id); err == nil {
			return sub, nil
		}
	}
	if id := data.str("customer", "customer_id", "customerId"); id != "" {
		if sub, err := s.subscriptionRepo.FindByGatewayCustomerID(ctx, id); err == nil {
			return sub, nil
		}
	}
	if raw := data.str("tenant_id", "tenantId"); raw != "" {
		if tenantID, err := uuid.Parse(raw); err == nil {
			if sub, err := s.subscriptionRepo.FindByTenant(ctx, tenantID); err == nil {
				return sub, nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

type webhookEventKind int

const (
	eventUnknown webhookEventKind = iota
	eventPaid
	eventPaymentFailed
	eventCanceled
)

func normalizeEventType(eventType string) webhookEventKind {
	switch eventType {
	case "paid", "invoice.paid", "subscription.paid", "payment.approved", "checkout.paid":
		return eventPaid
	case "payment_failed", "invoice.payment_failed", "subscription.payment_failed":
		return eventPaymentFailed
	case "canceled", "cancelled", "subscription.canceled", "subscription.cancelled":
		return eventCanceled
	}
	return eventUnknown
}

func parseWebhookPayload(body []byte) (*webhookPayload, error) {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return &webhookPayload{raw: raw}, nil
}

// str returns the first present key decoded as a string
func (p *webhookPayload) str(keys ...string) string {
	if p == nil {
		return ""
	}
	for _, key := range keys {
		if raw, ok := p.raw[key]; ok {
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return s
			}
		}
	}
	return ""
}

// intValue returns the first present key decoded as an integer
func (p *webhookPayload) intValue(keys ...string) int {
	if p == nil {
		return 0
	}
	for _, key := range keys {
		if raw, ok := p.raw[key]; ok {
			var n int
			if err := json.Unmarshal(raw, &n); err == nil {
				return n
			}
		}
	}
	return 0
}

// timeValue accepts RFC 3339 strings and unix-second numbers
func (p *webhookPayload) timeValue(keys ...string) (time.Time, bool) {
	if p == nil {
		return time.Time{}, false
	}
	for _, key := range keys {
		raw, ok := p.raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				return ts, true
			}
			continue
		}
		var unix int64
		if err := json.Unmarshal(raw, &unix); err == nil && unix > 0 {
			return time.Unix(unix, 0), true
		}
	}
	return time.Time{}, false
}

// object returns the first present key decoded as a nested object
func (p *webhookPayload) object(keys ...string) *webhookPayload {
	for _, key := range keys {
		if raw, ok := p.raw[key]; ok {
			nested := make(map[string]json.RawMessage)
			if err := json.Unmarshal(raw, &nested); err == nil {
				return &webhookPayload{raw: nested}
			}
		}
	}
	return nil
}
