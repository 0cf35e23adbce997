package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	printingapp "github.com/GBR-422777/invoiceninja/internal/application/printing"
)

// DesignHandler handles invoice design endpoints
type DesignHandler struct {
	BaseHandler
	service *printingapp.RenderService
}

// NewDesignHandler creates a new DesignHandler
func NewDesignHandler(service *printingapp.RenderService) *DesignHandler {
	return &DesignHandler{service: service}
}

// RegisterRoutes registers design routes on the API group
func (h *DesignHandler) RegisterRoutes(rg *gin.RouterGroup) {
	designs := rg.Group("/designs")
	designs.GET("", h.ListDesigns)
	designs.GET("/:id", h.GetDesign)
	designs.POST("", h.CreateDesign)
	designs.PUT("/:id", h.UpdateDesign)
	designs.DELETE("/:id", h.DeleteDesign)
	designs.POST("/:id/default", h.SetDefaultDesign)
}

// ListDesigns returns designs with pagination
func (h *DesignHandler) ListDesigns(c *gin.Context) {
	req := printingapp.ListDesignsRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListDesigns(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// GetDesign returns a single design including its template content
func (h *DesignHandler) GetDesign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid design ID format")
		return
	}

	result, err := h.service.GetDesign(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateDesign creates a new design
func (h *DesignHandler) CreateDesign(c *gin.Context) {
	var req printingapp.CreateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateDesign(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// UpdateDesign updates an existing design
func (h *DesignHandler) UpdateDesign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid design ID format")
		return
	}

	var req printingapp.UpdateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateDesign(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteDesign deletes a design
func (h *DesignHandler) DeleteDesign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid design ID format")
		return
	}

	if err := h.service.DeleteDesign(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetDefaultDesign marks a design as the rendering default
func (h *DesignHandler) SetDefaultDesign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid design ID format")
		return
	}

	result, err := h.service.SetDefaultDesign(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
