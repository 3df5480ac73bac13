package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/graficaerp/backend/internal/application/catalog"
	identityapp "github.com/graficaerp/backend/internal/application/identity"
	ordersapp "github.com/graficaerp/backend/internal/application/orders"
	"github.com/graficaerp/backend/internal/domain/identity"
	"github.com/graficaerp/backend/internal/domain/shared"
)

// PublicHandler serves the unauthenticated storefront: the tenant catalog,
// checkout and order tracking by token.
type PublicHandler struct {
	BaseHandler
	tenantService      *identityapp.TenantService
	productService     *catalog.ProductService
	publicOrderService *ordersapp.PublicOrderService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(
	tenantService *identityapp.TenantService,
	productService *catalog.ProductService,
	publicOrderService *ordersapp.PublicOrderService,
) *PublicHandler {
	return &PublicHandler{
		tenantService:      tenantService,
		productService:     productService,
		publicOrderService: publicOrderService,
	}
}

// resolveTenant maps the URL slug to an active tenant. Suspended shops
// disappear from the public surface.
func (h *PublicHandler) resolveTenant(c *gin.Context) (*identity.Tenant, bool) {
	slug := c.Param("slug")
	tenant, err := h.tenantService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	if !tenant.Active {
		h.HandleError(c, shared.NewDomainError("TENANT_NOT_FOUND", "Shop not found"))
		return nil, false
	}
	return tenant, true
}

// Catalog returns the tenant's publicly visible products
func (h *PublicHandler) Catalog(c *gin.Context) {
	tenant, ok := h.resolveTenant(c)
	if !ok {
		return
	}

	products, err := h.productService.ListPublic(c.Request.Context(), tenant.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"shop":     gin.H{"name": tenant.Name, "slug": tenant.Slug},
		"products": products,
	})
}

// Checkout creates a quote from the public storefront cart and returns the
// tracking token.
func (h *PublicHandler) Checkout(c *gin.Context) {
	tenant, ok := h.resolveTenant(c)
	if !ok {
		return
	}

	var req ordersapp.PublicCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid checkout payload: "+bindingMessage(err))
		return
	}

	result, err := h.publicOrderService.Checkout(c.Request.Context(), tenant.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// TrackOrder returns the customer-facing order view for a tracking token
func (h *PublicHandler) TrackOrder(c *gin.Context) {
	token := c.Param("token")

	order, err := h.publicOrderService.LookupByToken(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

type approveOrderRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// ApproveOrder lets the customer approve their quote through the tracking
// token, moving it to aprovado.
func (h *PublicHandler) ApproveOrder(c *gin.Context) {
	token := c.Param("token")

	var req approveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BadRequest(c, "Invalid approval payload: "+bindingMessage(err))
		return
	}

	order, err := h.publicOrderService.ApproveByToken(c.Request.Context(), token, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// PayOrder records a payment through the tracking token. Balance rules are
// the same as for staff-recorded payments.
func (h *PublicHandler) PayOrder(c *gin.Context) {
	token := c.Param("token")

	var req ordersapp.PublicPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid payment payload: "+bindingMessage(err))
		return
	}

	order, err := h.publicOrderService.PayByToken(c.Request.Context(), token, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}
