package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/graficaerp/backend/internal/application/finance"
)

// PaymentHandler handles order payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record registers a payment against an order. Payments above the remaining
// balance are rejected.
func (h *PaymentHandler) Record(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	var req financeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid payment payload: "+bindingMessage(err))
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.RecordedBy = &userID
	}

	result, err := h.paymentService.Record(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListByOrder returns the payments recorded for an order with the
// reconciled totals.
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	result, err := h.paymentService.ListByOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel voids a payment and restores the order balance
func (h *PaymentHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	paymentID, err := parseUUIDParam(c, "payment_id")
	if err != nil {
		h.BadRequest(c, "Invalid payment id")
		return
	}

	result, err := h.paymentService.Cancel(c.Request.Context(), tenantID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
