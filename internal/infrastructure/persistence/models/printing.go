package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/GBR-422777/invoiceninja/internal/domain/printing"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// InvoiceDesignModel is the GORM model for invoice_designs table
type InvoiceDesignModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Content      string    `gorm:"type:text;not null"`
	PageSize     string    `gorm:"column:page_size;type:varchar(20);not null;default:'A4'"`
	MarginLeft   float64   `gorm:"column:margin_left;not null;default:40"`
	MarginTop    float64   `gorm:"column:margin_top;not null;default:40"`
	MarginRight  float64   `gorm:"column:margin_right;not null;default:40"`
	MarginBottom float64   `gorm:"column:margin_bottom;not null;default:40"`
	IsDefault    bool      `gorm:"column:is_default;not null;default:false"`
	Status       string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Version      int       `gorm:"not null;default:1"`
}

// TableName returns the table name for InvoiceDesignModel
func (InvoiceDesignModel) TableName() string {
	return "invoice_designs"
}

// ToDomain converts InvoiceDesignModel to domain InvoiceDesign
func (m *InvoiceDesignModel) ToDomain() *printing.InvoiceDesign {
	return &printing.InvoiceDesign{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:     m.Name,
		Content:  m.Content,
		PageSize: printing.PageSize(m.PageSize),
		Margins: printing.Margins{
			Left:   m.MarginLeft,
			Top:    m.MarginTop,
			Right:  m.MarginRight,
			Bottom: m.MarginBottom,
		},
		IsDefault: m.IsDefault,
		Status:    printing.DesignStatus(m.Status),
	}
}

// InvoiceDesignModelFromDomain creates an InvoiceDesignModel from domain InvoiceDesign
func InvoiceDesignModelFromDomain(d *printing.InvoiceDesign) *InvoiceDesignModel {
	return &InvoiceDesignModel{
		ID:           d.ID,
		Name:         d.Name,
		Content:      d.Content,
		PageSize:     string(d.PageSize),
		MarginLeft:   d.Margins.Left,
		MarginTop:    d.Margins.Top,
		MarginRight:  d.Margins.Right,
		MarginBottom: d.Margins.Bottom,
		IsDefault:    d.IsDefault,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		Version:      d.Version,
	}
}

// RenderJobModel is the GORM model for render_jobs table
type RenderJobModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	DesignID       uuid.UUID  `gorm:"column:design_id;type:uuid;not null;index"`
	EntityType     string     `gorm:"column:entity_type;type:varchar(20);not null"`
	DocumentNumber string     `gorm:"column:document_number;type:varchar(100)"`
	Status         string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	OutputBytes    int        `gorm:"column:output_bytes;not null;default:0"`
	ErrorMessage   string     `gorm:"column:error_message;type:text"`
	RenderedAt     *time.Time `gorm:"column:rendered_at"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
	Version        int        `gorm:"not null;default:1"`
}

// TableName returns the table name for RenderJobModel
func (RenderJobModel) TableName() string {
	return "render_jobs"
}

// ToDomain converts RenderJobModel to domain RenderJob
func (m *RenderJobModel) ToDomain() *printing.RenderJob {
	return &printing.RenderJob{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		DesignID:       m.DesignID,
		EntityType:     printing.EntityType(m.EntityType),
		DocumentNumber: m.DocumentNumber,
		Status:         printing.JobStatus(m.Status),
		OutputBytes:    m.OutputBytes,
		ErrorMessage:   m.ErrorMessage,
		RenderedAt:     m.RenderedAt,
	}
}

// RenderJobModelFromDomain creates a RenderJobModel from domain RenderJob
func RenderJobModelFromDomain(j *printing.RenderJob) *RenderJobModel {
	return &RenderJobModel{
		ID:             j.ID,
		DesignID:       j.DesignID,
		EntityType:     string(j.EntityType),
		DocumentNumber: j.DocumentNumber,
		Status:         string(j.Status),
		OutputBytes:    j.OutputBytes,
		ErrorMessage:   j.ErrorMessage,
		RenderedAt:     j.RenderedAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
		Version:        j.Version,
	}
}
