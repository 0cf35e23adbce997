package printing

import (
	"context"

	"github.com/google/uuid"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// DesignRepository defines the interface for invoice design persistence
type DesignRepository interface {
	// FindByID finds a design by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InvoiceDesign, error)

	// FindByName finds a design by its exact name
	FindByName(ctx context.Context, name string) (*InvoiceDesign, error)

	// FindAll finds all designs with optional filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]InvoiceDesign, error)

	// FindDefault finds the default design. Returns nil if none is set.
	FindDefault(ctx context.Context) (*InvoiceDesign, error)

	// Save saves a design (insert or update)
	Save(ctx context.Context, design *InvoiceDesign) error

	// Delete deletes a design by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total count of designs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a design with the given name exists
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// ClearDefault clears the default flag on all designs.
	// Used when setting a new default design.
	ClearDefault(ctx context.Context) error
}

// RenderJobRepository defines the interface for render job persistence
type RenderJobRepository interface {
	// FindByID finds a job by ID
	FindByID(ctx context.Context, id uuid.UUID) (*RenderJob, error)

	// FindAll finds all jobs with optional filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]RenderJob, error)

	// FindRecent finds jobs created within the last N days
	FindRecent(ctx context.Context, days int, limit int) ([]RenderJob, error)

	// Save saves a job (insert or update)
	Save(ctx context.Context, job *RenderJob) error

	// Count returns the total count of jobs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts jobs by status
	CountByStatus(ctx context.Context, status JobStatus) (int64, error)

	// DeleteOlderThan deletes jobs older than the specified number of days
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
