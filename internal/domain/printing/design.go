package printing

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// InvoiceDesign represents a document definition template carrying
// placeholder tokens. It is the aggregate root for design operations.
type InvoiceDesign struct {
	shared.BaseAggregateRoot
	Name      string       // Design name (Clean, Bold, Modern, ...)
	Content   string       // Document definition JSON with placeholder tokens
	PageSize  PageSize     // Default page size when the account sets none
	Margins   Margins      // Page margins in points
	IsDefault bool         // Whether this is the default design
	Status    DesignStatus // Design status (active/inactive)
}

// NewInvoiceDesign creates a new invoice design
func NewInvoiceDesign(name, content string) (*InvoiceDesign, error) {
	if err := validateDesignName(name); err != nil {
		return nil, err
	}
	if err := validateDesignContent(content); err != nil {
		return nil, err
	}

	design := &InvoiceDesign{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Content:           content,
		PageSize:          PageSizeA4,
		Margins:           DefaultMargins(),
		IsDefault:         false,
		Status:            DesignStatusActive,
	}

	design.AddDomainEvent(NewInvoiceDesignCreatedEvent(design))

	return design, nil
}

// Rename changes the design name
func (d *InvoiceDesign) Rename(name string) error {
	if err := validateDesignName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewInvoiceDesignUpdatedEvent(d))

	return nil
}

// UpdateContent replaces the design's document definition
func (d *InvoiceDesign) UpdateContent(content string) error {
	if err := validateDesignContent(content); err != nil {
		return err
	}

	d.Content = content
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewInvoiceDesignUpdatedEvent(d))

	return nil
}

// SetPageSize sets the default page size
func (d *InvoiceDesign) SetPageSize(pageSize PageSize) error {
	if !pageSize.IsValid() {
		return shared.NewDomainError("INVALID_PAGE_SIZE", "Invalid page size")
	}

	d.PageSize = pageSize
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetMargins sets the page margins
func (d *InvoiceDesign) SetMargins(margins Margins) {
	d.Margins = margins
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewInvoiceDesignUpdatedEvent(d))
}

// SetAsDefault marks this design as the default.
// The caller should ensure only one design is marked as default.
func (d *InvoiceDesign) SetAsDefault() error {
	if d.Status != DesignStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot set inactive design as default")
	}

	if d.IsDefault {
		return nil
	}

	d.IsDefault = true
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewInvoiceDesignSetAsDefaultEvent(d))

	return nil
}

// UnsetDefault removes the default flag from this design
func (d *InvoiceDesign) UnsetDefault() {
	if !d.IsDefault {
		return
	}

	d.IsDefault = false
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// Activate activates the design
func (d *InvoiceDesign) Activate() error {
	if d.Status == DesignStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Design is already active")
	}

	oldStatus := d.Status
	d.Status = DesignStatusActive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewInvoiceDesignStatusChangedEvent(d, oldStatus, DesignStatusActive))

	return nil
}

// Deactivate deactivates the design
func (d *InvoiceDesign) Deactivate() error {
	if d.Status == DesignStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Design is already inactive")
	}

	if d.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate the default design. Set another design as default first.")
	}

	oldStatus := d.Status
	d.Status = DesignStatusInactive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewInvoiceDesignStatusChangedEvent(d, oldStatus, DesignStatusInactive))

	return nil
}

// IsActive returns true if the design is active
func (d *InvoiceDesign) IsActive() bool {
	return d.Status == DesignStatusActive
}

// CanBeUsed returns true if the design can be used for rendering
func (d *InvoiceDesign) CanBeUsed() bool {
	return d.Status == DesignStatusActive && d.Content != ""
}

// Validation functions

func validateDesignName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Design name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Design name cannot exceed 100 characters")
	}
	return nil
}

func validateDesignContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Design content cannot be empty")
	}
	if len(content) > 1024*1024 {
		return shared.NewDomainError("INVALID_CONTENT", "Design content cannot exceed 1MB")
	}
	if !json.Valid([]byte(content)) {
		return shared.NewDomainError("INVALID_CONTENT", "Design content must be valid JSON")
	}
	return nil
}
