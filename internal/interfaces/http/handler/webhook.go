package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/graficaerp/backend/internal/application/billing"
)

// SignatureHeader carries the gateway's HMAC signature over the raw body
const SignatureHeader = "X-Webhook-Signature"

// WebhookHandler receives payment gateway events
type WebhookHandler struct {
	BaseHandler
	webhookService *billingapp.WebhookService
	logger         *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *billingapp.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService, logger: logger}
}

// Receive verifies and processes a gateway event. The raw body is passed
// untouched because the signature covers the exact bytes. Replayed event
// ids are acknowledged without reprocessing.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Failed to read webhook body")
		return
	}

	signature := c.GetHeader(SignatureHeader)
	result, err := h.webhookService.Process(c.Request.Context(), body, signature)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Duplicate {
		h.logger.Info("Duplicate webhook event acknowledged",
			zap.String("event_id", result.EventID),
			zap.String("event_type", result.EventType))
	}
	h.Success(c, result)
}
