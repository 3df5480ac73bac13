package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/graficaerp/backend/internal/application/billing"
	"github.com/graficaerp/backend/internal/interfaces/http/middleware"
)

// BillingHandler handles subscription plan and checkout endpoints
type BillingHandler struct {
	BaseHandler
	checkoutService *billingapp.CheckoutService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(checkoutService *billingapp.CheckoutService) *BillingHandler {
	return &BillingHandler{checkoutService: checkoutService}
}

// ListPlans returns the active subscription plans
func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.checkoutService.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plans)
}

// GetSubscription returns the tenant's subscription state
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	subscription, err := h.checkoutService.GetSubscription(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subscription)
}

// StartCheckout creates a gateway checkout session for a paid plan and
// returns the hosted payment page URL.
func (h *BillingHandler) StartCheckout(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid checkout payload: "+bindingMessage(err))
		return
	}

	email := ""
	if claims := middleware.GetJWTClaims(c); claims != nil {
		email = claims.Email
	}

	result, err := h.checkoutService.StartCheckout(c.Request.Context(), tenantID, email, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
