package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/graficaerp/backend/internal/application/catalog"
)

// CategoryHandler handles product category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalog.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create adds a category
func (h *CategoryHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid category payload: "+bindingMessage(err))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// List returns all categories for the tenant
func (h *CategoryHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Rename changes a category's name
func (h *CategoryHandler) Rename(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	categoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category id")
		return
	}

	var req catalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid category payload: "+bindingMessage(err))
		return
	}

	category, err := h.categoryService.Rename(c.Request.Context(), tenantID, categoryID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete removes a category. Categories still referenced by products are
// rejected.
func (h *CategoryHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	categoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category id")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), tenantID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
