package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GBR-422777/invoiceninja/internal/domain/printing"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/persistence/models"
)

// RenderJobSortFields defines allowed sort fields for render jobs
var RenderJobSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"rendered_at":  true,
	"status":       true,
	"entity_type":  true,
	"output_bytes": true,
}

// GormRenderJobRepository implements RenderJobRepository using GORM
type GormRenderJobRepository struct {
	db *gorm.DB
}

// NewGormRenderJobRepository creates a new GormRenderJobRepository
func NewGormRenderJobRepository(db *gorm.DB) *GormRenderJobRepository {
	return &GormRenderJobRepository{db: db}
}

// FindByID finds a job by ID
func (r *GormRenderJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*printing.RenderJob, error) {
	var model models.RenderJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all jobs with optional filtering
func (r *GormRenderJobRepository) FindAll(ctx context.Context, filter shared.Filter) ([]printing.RenderJob, error) {
	var jobModels []models.RenderJobModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RenderJobModel{}), filter)

	if err := query.Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]printing.RenderJob, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = *model.ToDomain()
	}
	return jobs, nil
}

// FindRecent finds jobs created within the last N days
func (r *GormRenderJobRepository) FindRecent(ctx context.Context, days int, limit int) ([]printing.RenderJob, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var jobModels []models.RenderJobModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]printing.RenderJob, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = *model.ToDomain()
	}
	return jobs, nil
}

// Save saves a job (insert or update)
func (r *GormRenderJobRepository) Save(ctx context.Context, job *printing.RenderJob) error {
	model := models.RenderJobModelFromDomain(job)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count returns the total count of jobs matching the filter
func (r *GormRenderJobRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RenderJobModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts jobs by status
func (r *GormRenderJobRepository) CountByStatus(ctx context.Context, status printing.JobStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RenderJobModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteOlderThan deletes jobs older than the specified number of days
func (r *GormRenderJobRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.RenderJobModel{})
	return result.RowsAffected, result.Error
}

// applyFilter applies filter options to the query
func (r *GormRenderJobRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, RenderJobSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("created_at DESC")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRenderJobRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("document_number LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "entity_type":
			query = query.Where("entity_type = ?", value)
		case "design_id":
			query = query.Where("design_id = ?", value)
		}
	}

	return query
}

// Ensure GormRenderJobRepository implements RenderJobRepository
var _ printing.RenderJobRepository = (*GormRenderJobRepository)(nil)
