package printing

import (
	"time"

	"github.com/google/uuid"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// RenderJob records one render request. Each job corresponds to one
// document definition produced (or attempted) for an invoice.
type RenderJob struct {
	shared.BaseAggregateRoot
	DesignID       uuid.UUID  // Design used for the render
	EntityType     EntityType // Kind of document rendered
	DocumentNumber string     // Invoice/quote number (for display)
	Status         JobStatus  // Current job status
	OutputBytes    int        // Size of the resolved document definition
	ErrorMessage   string     // Error message if the job failed
	RenderedAt     *time.Time // When the render completed
}

// NewRenderJob creates a new render job
func NewRenderJob(designID uuid.UUID, entityType EntityType, documentNumber string) (*RenderJob, error) {
	if designID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DESIGN", "Design ID cannot be empty")
	}
	if !entityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Invalid entity type")
	}

	job := &RenderJob{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DesignID:          designID,
		EntityType:        entityType,
		DocumentNumber:    documentNumber,
		Status:            JobStatusPending,
	}

	job.AddDomainEvent(NewRenderJobCreatedEvent(job))

	return job, nil
}

// Start marks the job as rendering
func (j *RenderJob) Start() error {
	if !j.Status.CanTransitionTo(JobStatusRendering) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot start rendering from status: "+j.Status.String())
	}

	j.Status = JobStatusRendering
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	j.AddDomainEvent(NewRenderJobStatusChangedEvent(j, JobStatusPending, JobStatusRendering))

	return nil
}

// Complete marks the job as completed with the output size
func (j *RenderJob) Complete(outputBytes int) error {
	if !j.Status.CanTransitionTo(JobStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot complete from status: "+j.Status.String())
	}
	if outputBytes <= 0 {
		return shared.NewDomainError("INVALID_OUTPUT", "Output size must be positive")
	}

	oldStatus := j.Status
	j.Status = JobStatusCompleted
	j.OutputBytes = outputBytes
	now := time.Now()
	j.RenderedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()

	j.AddDomainEvent(NewRenderJobStatusChangedEvent(j, oldStatus, JobStatusCompleted))

	return nil
}

// Fail marks the job as failed with an error message
func (j *RenderJob) Fail(errorMessage string) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot fail a job that is already in terminal status: "+j.Status.String())
	}

	oldStatus := j.Status
	j.Status = JobStatusFailed
	j.ErrorMessage = errorMessage
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	j.AddDomainEvent(NewRenderJobStatusChangedEvent(j, oldStatus, JobStatusFailed))
	j.AddDomainEvent(NewRenderJobFailedEvent(j))

	return nil
}

// IsCompleted returns true if the job is completed
func (j *RenderJob) IsCompleted() bool {
	return j.Status == JobStatusCompleted
}

// IsFailed returns true if the job failed
func (j *RenderJob) IsFailed() bool {
	return j.Status == JobStatusFailed
}

// IsTerminal returns true if the job is in a terminal state
func (j *RenderJob) IsTerminal() bool {
	return j.Status.IsTerminal()
}
