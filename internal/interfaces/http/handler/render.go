package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	printingapp "github.com/GBR-422777/invoiceninja/internal/application/printing"
)

// RenderHandler handles document render endpoints
type RenderHandler struct {
	BaseHandler
	service *printingapp.RenderService
}

// NewRenderHandler creates a new RenderHandler
func NewRenderHandler(service *printingapp.RenderService) *RenderHandler {
	return &RenderHandler{service: service}
}

// RegisterRoutes registers render routes on the API group
func (h *RenderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/render", h.Render)

	jobs := rg.Group("/jobs")
	jobs.GET("", h.ListJobs)
	jobs.GET("/:id", h.GetJob)
}

// Render resolves an invoice against a design and returns the document
// definition tree
func (h *RenderHandler) Render(c *gin.Context) {
	var req printingapp.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Render(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListJobs returns render jobs with pagination
func (h *RenderHandler) ListJobs(c *gin.Context) {
	req := printingapp.ListJobsRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListJobs(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// GetJob returns a single render job
func (h *RenderHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID format")
		return
	}

	result, err := h.service.GetJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
