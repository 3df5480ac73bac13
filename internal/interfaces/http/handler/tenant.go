package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/graficaerp/backend/internal/application/identity"
)

// TenantHandler handles tenant self-service signup
type TenantHandler struct {
	BaseHandler
	tenantService *identity.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *identity.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Signup registers a new print shop with its first admin user and starts
// the trial subscription.
func (h *TenantHandler) Signup(c *gin.Context) {
	var input identity.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid signup payload: "+bindingMessage(err))
		return
	}

	result, err := h.tenantService.Signup(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
