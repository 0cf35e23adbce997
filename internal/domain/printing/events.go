package printing

import (
	"github.com/google/uuid"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeInvoiceDesign = "InvoiceDesign"
	AggregateTypeRenderJob     = "RenderJob"
)

// Event type constants for InvoiceDesign
const (
	EventTypeInvoiceDesignCreated       = "InvoiceDesignCreated"
	EventTypeInvoiceDesignUpdated       = "InvoiceDesignUpdated"
	EventTypeInvoiceDesignStatusChanged = "InvoiceDesignStatusChanged"
	EventTypeInvoiceDesignSetAsDefault  = "InvoiceDesignSetAsDefault"
)

// Event type constants for RenderJob
const (
	EventTypeRenderJobCreated       = "RenderJobCreated"
	EventTypeRenderJobStatusChanged = "RenderJobStatusChanged"
	EventTypeRenderJobFailed        = "RenderJobFailed"
)

// InvoiceDesignCreatedEvent is published when a new design is created
type InvoiceDesignCreatedEvent struct {
	shared.BaseDomainEvent
	DesignID uuid.UUID `json:"design_id"`
	Name     string    `json:"name"`
}

// NewInvoiceDesignCreatedEvent creates a new InvoiceDesignCreatedEvent
func NewInvoiceDesignCreatedEvent(design *InvoiceDesign) *InvoiceDesignCreatedEvent {
	return &InvoiceDesignCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeInvoiceDesignCreated, AggregateTypeInvoiceDesign, design.ID),
		DesignID: design.ID,
		Name:     design.Name,
	}
}

// InvoiceDesignUpdatedEvent is published when a design is updated
type InvoiceDesignUpdatedEvent struct {
	shared.BaseDomainEvent
	DesignID uuid.UUID `json:"design_id"`
	Name     string    `json:"name"`
}

// NewInvoiceDesignUpdatedEvent creates a new InvoiceDesignUpdatedEvent
func NewInvoiceDesignUpdatedEvent(design *InvoiceDesign) *InvoiceDesignUpdatedEvent {
	return &InvoiceDesignUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeInvoiceDesignUpdated, AggregateTypeInvoiceDesign, design.ID),
		DesignID: design.ID,
		Name:     design.Name,
	}
}

// InvoiceDesignStatusChangedEvent is published when a design's status changes
type InvoiceDesignStatusChangedEvent struct {
	shared.BaseDomainEvent
	DesignID  uuid.UUID    `json:"design_id"`
	Name      string       `json:"name"`
	OldStatus DesignStatus `json:"old_status"`
	NewStatus DesignStatus `json:"new_status"`
}

// NewInvoiceDesignStatusChangedEvent creates a new InvoiceDesignStatusChangedEvent
func NewInvoiceDesignStatusChangedEvent(design *InvoiceDesign, oldStatus, newStatus DesignStatus) *InvoiceDesignStatusChangedEvent {
	return &InvoiceDesignStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeInvoiceDesignStatusChanged, AggregateTypeInvoiceDesign, design.ID),
		DesignID:  design.ID,
		Name:      design.Name,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

// InvoiceDesignSetAsDefaultEvent is published when a design becomes the default
type InvoiceDesignSetAsDefaultEvent struct {
	shared.BaseDomainEvent
	DesignID uuid.UUID `json:"design_id"`
	Name     string    `json:"name"`
}

// NewInvoiceDesignSetAsDefaultEvent creates a new InvoiceDesignSetAsDefaultEvent
func NewInvoiceDesignSetAsDefaultEvent(design *InvoiceDesign) *InvoiceDesignSetAsDefaultEvent {
	return &InvoiceDesignSetAsDefaultEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeInvoiceDesignSetAsDefault, AggregateTypeInvoiceDesign, design.ID),
		DesignID: design.ID,
		Name:     design.Name,
	}
}

// RenderJobCreatedEvent is published when a new render job is created
type RenderJobCreatedEvent struct {
	shared.BaseDomainEvent
	JobID          uuid.UUID  `json:"job_id"`
	DesignID       uuid.UUID  `json:"design_id"`
	EntityType     EntityType `json:"entity_type"`
	DocumentNumber string     `json:"document_number"`
}

// NewRenderJobCreatedEvent creates a new RenderJobCreatedEvent
func NewRenderJobCreatedEvent(job *RenderJob) *RenderJobCreatedEvent {
	return &RenderJobCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeRenderJobCreated, AggregateTypeRenderJob, job.ID),
		JobID:          job.ID,
		DesignID:       job.DesignID,
		EntityType:     job.EntityType,
		DocumentNumber: job.DocumentNumber,
	}
}

// RenderJobStatusChangedEvent is published when a job's status changes
type RenderJobStatusChangedEvent struct {
	shared.BaseDomainEvent
	JobID     uuid.UUID `json:"job_id"`
	OldStatus JobStatus `json:"old_status"`
	NewStatus JobStatus `json:"new_status"`
}

// NewRenderJobStatusChangedEvent creates a new RenderJobStatusChangedEvent
func NewRenderJobStatusChangedEvent(job *RenderJob, oldStatus, newStatus JobStatus) *RenderJobStatusChangedEvent {
	return &RenderJobStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeRenderJobStatusChanged, AggregateTypeRenderJob, job.ID),
		JobID:     job.ID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

// RenderJobFailedEvent is published when a render job fails
type RenderJobFailedEvent struct {
	shared.BaseDomainEvent
	JobID        uuid.UUID `json:"job_id"`
	ErrorMessage string    `json:"error_message"`
}

// NewRenderJobFailedEvent creates a new RenderJobFailedEvent
func NewRenderJobFailedEvent(job *RenderJob) *RenderJobFailedEvent {
	return &RenderJobFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeRenderJobFailed, AggregateTypeRenderJob, job.ID),
		JobID:        job.ID,
		ErrorMessage: job.ErrorMessage,
	}
}
