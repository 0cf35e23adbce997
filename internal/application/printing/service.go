package printing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
	"github.com/GBR-422777/invoiceninja/internal/domain/printing"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
	infra "github.com/GBR-422777/invoiceninja/internal/infrastructure/printing"
)

// RenderService handles design management and document rendering
type RenderService struct {
	designRepo     printing.DesignRepository
	jobRepo        printing.RenderJobRepository
	builder        *infra.Builder
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewRenderService creates a new render service
func NewRenderService(
	designRepo printing.DesignRepository,
	jobRepo printing.RenderJobRepository,
	builder *infra.Builder,
	logger *zap.Logger,
) *RenderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderService{
		designRepo: designRepo,
		jobRepo:    jobRepo,
		builder:    builder,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for design and job lifecycle events
func (s *RenderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvents publishes pending domain events from an aggregate and clears them.
// Publish failures are logged and do not fail the operation.
func (s *RenderService) publishEvents(ctx context.Context, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	aggregate.ClearDomainEvents()
}

// =============================================================================
// Design operations
// =============================================================================

// CreateDesign creates a new invoice design
func (s *RenderService) CreateDesign(ctx context.Context, req CreateDesignRequest) (*DesignResponse, error) {
	exists, err := s.designRepo.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check design name: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Design with name '%s' already exists", req.Name))
	}

	design, err := printing.NewInvoiceDesign(req.Name, req.Content)
	if err != nil {
		return nil, err
	}

	if req.PageSize != "" {
		if err := design.SetPageSize(printing.ParsePageSize(req.PageSize)); err != nil {
			return nil, err
		}
	}
	if req.Margins != nil {
		design.SetMargins(marginsFromDTO(*req.Margins))
	}

	if err := s.designRepo.Save(ctx, design); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}
	s.publishEvents(ctx, design)

	s.logger.Info("design created",
		zap.String("design_id", design.ID.String()),
		zap.String("name", design.Name))

	resp := toDesignResponse(design, true)
	return &resp, nil
}

// GetDesign retrieves a design by ID
func (s *RenderService) GetDesign(ctx context.Context, id uuid.UUID) (*DesignResponse, error) {
	design, err := s.designRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Design not found")
		}
		return nil, fmt.Errorf("failed to find design: %w", err)
	}

	resp := toDesignResponse(design, true)
	return &resp, nil
}

// ListDesigns retrieves designs with pagination
func (s *RenderService) ListDesigns(ctx context.Context, req ListDesignsRequest) (*ListDesignsResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	designs, err := s.designRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}

	total, err := s.designRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count designs: %w", err)
	}

	items := make([]DesignResponse, len(designs))
	for i := range designs {
		items[i] = toDesignResponse(&designs[i], false)
	}

	return &ListDesignsResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// UpdateDesign updates an existing design
func (s *RenderService) UpdateDesign(ctx context.Context, id uuid.UUID, req UpdateDesignRequest) (*DesignResponse, error) {
	design, err := s.designRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Design not found")
		}
		return nil, fmt.Errorf("failed to find design: %w", err)
	}

	if req.Name != nil && *req.Name != design.Name {
		exists, err := s.designRepo.ExistsByName(ctx, *req.Name, &id)
		if err != nil {
			return nil, fmt.Errorf("failed to check design name: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("Design with name '%s' already exists", *req.Name))
		}
		if err := design.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Content != nil {
		if err := design.UpdateContent(*req.Content); err != nil {
			return nil, err
		}
	}
	if req.PageSize != nil {
		if err := design.SetPageSize(printing.ParsePageSize(*req.PageSize)); err != nil {
			return nil, err
		}
	}
	if req.Margins != nil {
		design.SetMargins(marginsFromDTO(*req.Margins))
	}

	if err := s.designRepo.Save(ctx, design); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}
	s.publishEvents(ctx, design)

	s.logger.Info("design updated", zap.String("design_id", design.ID.String()))

	resp := toDesignResponse(design, true)
	return &resp, nil
}

// DeleteDesign deletes a design. The default design cannot be deleted.
func (s *RenderService) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	design, err := s.designRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Design not found")
		}
		return fmt.Errorf("failed to find design: %w", err)
	}

	if design.IsDefault {
		return shared.NewDomainError("INVALID_OPERATION",
			"Cannot delete the default design")
	}

	if err := s.designRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete design: %w", err)
	}

	s.logger.Info("design deleted", zap.String("design_id", id.String()))
	return nil
}

// SetDefaultDesign marks a design as the default for rendering
func (s *RenderService) SetDefaultDesign(ctx context.Context, id uuid.UUID) (*DesignResponse, error) {
	design, err := s.designRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Design not found")
		}
		return nil, fmt.Errorf("failed to find design: %w", err)
	}

	if err := s.designRepo.ClearDefault(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear default design: %w", err)
	}

	if err := design.SetAsDefault(); err != nil {
		return nil, err
	}

	if err := s.designRepo.Save(ctx, design); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}
	s.publishEvents(ctx, design)

	s.logger.Info("default design changed",
		zap.String("design_id", design.ID.String()),
		zap.String("name", design.Name))

	resp := toDesignResponse(design, true)
	return &resp, nil
}

// =============================================================================
// Render operations
// =============================================================================

// Render resolves a design against an invoice and records a render job
func (s *RenderService) Render(ctx context.Context, req RenderRequest) (*RenderResponse, error) {
	design, err := s.resolveDesign(ctx, req.DesignID)
	if err != nil {
		return nil, err
	}

	if !design.CanBeUsed() {
		return nil, shared.NewDomainError("INVALID_OPERATION",
			fmt.Sprintf("Design '%s' is not active", design.Name))
	}

	entityType := classifyEntity(req.Invoice)

	job, err := printing.NewRenderJob(design.ID, entityType, req.Invoice.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if err := job.Start(); err != nil {
		return nil, err
	}

	document, renderErr := s.builder.BuildJSON(req.Invoice, design.Content, buildOptions(req.Options))
	if renderErr != nil {
		if failErr := job.Fail(renderErr.Error()); failErr == nil {
			if saveErr := s.jobRepo.Save(ctx, job); saveErr != nil {
				s.logger.Error("failed to save failed render job",
					zap.String("job_id", job.ID.String()),
					zap.Error(saveErr))
			}
			s.publishEvents(ctx, job)
		}
		s.logger.Warn("render failed",
			zap.String("design_id", design.ID.String()),
			zap.String("entity_type", entityType.String()),
			zap.Error(renderErr))
		return nil, renderErr
	}

	if err := job.Complete(len(document)); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save render job: %w", err)
	}
	s.publishEvents(ctx, job)

	s.logger.Info("document rendered",
		zap.String("job_id", job.ID.String()),
		zap.String("design_id", design.ID.String()),
		zap.String("entity_type", entityType.String()),
		zap.Int("output_bytes", len(document)))

	return &RenderResponse{
		JobID:       job.ID.String(),
		DesignID:    design.ID.String(),
		EntityType:  entityType.String(),
		OutputBytes: len(document),
		Document:    document,
	}, nil
}

// GetJob retrieves a render job by ID
func (s *RenderService) GetJob(ctx context.Context, id uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Render job not found")
		}
		return nil, fmt.Errorf("failed to find render job: %w", err)
	}

	resp := toJobResponse(job)
	return &resp, nil
}

// ListJobs retrieves render jobs with pagination
func (s *RenderService) ListJobs(ctx context.Context, req ListJobsRequest) (*ListJobsResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	jobs, err := s.jobRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list render jobs: %w", err)
	}

	total, err := s.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count render jobs: %w", err)
	}

	items := make([]JobResponse, len(jobs))
	for i := range jobs {
		items[i] = toJobResponse(&jobs[i])
	}

	return &ListJobsResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// =============================================================================
// Helpers
// =============================================================================

// resolveDesign finds the requested design, or the default when no ID
// is given
func (s *RenderService) resolveDesign(ctx context.Context, id *uuid.UUID) (*printing.InvoiceDesign, error) {
	if id != nil {
		design, err := s.designRepo.FindByID(ctx, *id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Design not found")
			}
			return nil, fmt.Errorf("failed to find design: %w", err)
		}
		return design, nil
	}

	design, err := s.designRepo.FindDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find default design: %w", err)
	}
	if design == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "No default design configured")
	}
	return design, nil
}

// classifyEntity determines the document kind from the invoice flags.
// A negative balance renders as a credit note.
func classifyEntity(inv *invoice.Invoice) printing.EntityType {
	switch {
	case inv.IsDeliveryNote.Bool():
		return printing.EntityTypeDeliveryNote
	case inv.IsStatement.Bool():
		return printing.EntityTypeStatement
	case inv.IsQuote.Bool():
		return printing.EntityTypeQuote
	case invoice.CalculateAmounts(inv).IsCredit():
		return printing.EntityTypeCredit
	default:
		return printing.EntityTypeInvoice
	}
}

func buildOptions(dto *RenderOptionsDTO) infra.Options {
	opts := infra.DefaultOptions()
	if dto == nil {
		return opts
	}
	if dto.BodyFont != "" {
		opts.BodyFont = dto.BodyFont
	}
	if dto.HeaderFont != "" {
		opts.HeaderFont = dto.HeaderFont
	}
	if dto.FontSize > 0 {
		opts.FontSize = dto.FontSize
	}
	opts.PrimaryColor = dto.PrimaryColor
	opts.SecondaryColor = dto.SecondaryColor
	opts.AccountLogo = dto.Logo
	opts.AccountBackground = dto.Background
	return opts
}

func marginsFromDTO(dto MarginsDTO) printing.Margins {
	return printing.Margins{
		Left:   dto.Left,
		Top:    dto.Top,
		Right:  dto.Right,
		Bottom: dto.Bottom,
	}
}

// toDesignResponse converts a design to a response DTO. Content is
// omitted in list views.
func toDesignResponse(d *printing.InvoiceDesign, withContent bool) DesignResponse {
	resp := DesignResponse{
		ID:       d.ID.String(),
		Name:     d.Name,
		PageSize: d.PageSize.String(),
		Margins: MarginsDTO{
			Left:   d.Margins.Left,
			Top:    d.Margins.Top,
			Right:  d.Margins.Right,
			Bottom: d.Margins.Bottom,
		},
		IsDefault: d.IsDefault,
		Status:    d.Status.String(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if withContent {
		resp.Content = d.Content
	}
	return resp
}

func toJobResponse(j *printing.RenderJob) JobResponse {
	return JobResponse{
		ID:             j.ID.String(),
		DesignID:       j.DesignID.String(),
		EntityType:     j.EntityType.String(),
		DocumentNumber: j.DocumentNumber,
		Status:         j.Status.String(),
		OutputBytes:    j.OutputBytes,
		ErrorMessage:   j.ErrorMessage,
		RenderedAt:     j.RenderedAt,
		CreatedAt:      j.CreatedAt,
	}
}
