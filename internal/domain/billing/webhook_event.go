package billing

import (
	"time"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// WebhookEvent is one received gateway notification, stored for idempotency.
// EventID carries a unique constraint; inserting a duplicate is how a replay
// is detected.
type WebhookEvent struct {
	shared.BaseAggregateRoot
	EventID     string
	EventType   string
	Payload     string
	ProcessedAt time.Time
}

// NewWebhookEvent records a received event
func NewWebhookEvent(eventID, eventType, payload string) (*WebhookEvent, error) {
	if eventID == "" {
		return nil, shared.NewDomainError("INVALID_EVENT", "Webhook event id cannot be empty")
	}
	return &WebhookEvent{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EventID:           eventID,
		EventType:         eventType,
		Payload:           payload,
		ProcessedAt:       time.Now(),
	}, nil
}
