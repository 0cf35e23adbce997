package printing

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
)

// =============================================================================
// Design DTOs
// =============================================================================

// CreateDesignRequest represents a request to create an invoice design
type CreateDesignRequest struct {
	Name     string      `json:"name" binding:"required,min=1,max=100"`
	Content  string      `json:"content" binding:"required"`
	PageSize string      `json:"page_size"`
	Margins  *MarginsDTO `json:"margins"`
}

// UpdateDesignRequest represents a request to update an invoice design
type UpdateDesignRequest struct {
	Name     *string     `json:"name" binding:"omitempty,min=1,max=100"`
	Content  *string     `json:"content"`
	PageSize *string     `json:"page_size"`
	Margins  *MarginsDTO `json:"margins"`
}

// ListDesignsRequest represents a request to list designs
type ListDesignsRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// DesignResponse represents an invoice design
type DesignResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Content   string     `json:"content,omitempty"`
	PageSize  string     `json:"page_size"`
	Margins   MarginsDTO `json:"margins"`
	IsDefault bool       `json:"is_default"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListDesignsResponse represents a paginated list of designs
type ListDesignsResponse struct {
	Items []DesignResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}

// MarginsDTO represents page margins in points
type MarginsDTO struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// =============================================================================
// Render DTOs
// =============================================================================

// RenderOptionsDTO carries presentation settings for one render
type RenderOptionsDTO struct {
	BodyFont       string `json:"body_font"`
	HeaderFont     string `json:"header_font"`
	FontSize       int    `json:"font_size" binding:"omitempty,min=6,max=24"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	Logo           string `json:"logo"`
	Background     string `json:"background"`
}

// RenderRequest represents a request to render an invoice into a
// document definition
type RenderRequest struct {
	DesignID *uuid.UUID        `json:"design_id"`
	Invoice  *invoice.Invoice  `json:"invoice" binding:"required"`
	Options  *RenderOptionsDTO `json:"options"`
}

// RenderResponse represents the resolved document definition
type RenderResponse struct {
	JobID       string          `json:"job_id"`
	DesignID    string          `json:"design_id"`
	EntityType  string          `json:"entity_type"`
	OutputBytes int             `json:"output_bytes"`
	Document    json.RawMessage `json:"document"`
}

// =============================================================================
// Render Job DTOs
// =============================================================================

// ListJobsRequest represents a request to list render jobs
type ListJobsRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status   string `form:"status"`
}

// JobResponse represents a render job
type JobResponse struct {
	ID             string     `json:"id"`
	DesignID       string     `json:"design_id"`
	EntityType     string     `json:"entity_type"`
	DocumentNumber string     `json:"document_number"`
	Status         string     `json:"status"`
	OutputBytes    int        `json:"output_bytes"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	RenderedAt     *time.Time `json:"rendered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ListJobsResponse represents a paginated list of render jobs
type ListJobsResponse struct {
	Items []JobResponse `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}
