package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GBR-422777/invoiceninja/internal/domain/printing"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/persistence/models"
)

// DesignSortFields defines allowed sort fields for invoice designs
var DesignSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"is_default": true,
}

// GormDesignRepository implements DesignRepository using GORM
type GormDesignRepository struct {
	db *gorm.DB
}

// NewGormDesignRepository creates a new GormDesignRepository
func NewGormDesignRepository(db *gorm.DB) *GormDesignRepository {
	return &GormDesignRepository{db: db}
}

// FindByID finds a design by ID
func (r *GormDesignRepository) FindByID(ctx context.Context, id uuid.UUID) (*printing.InvoiceDesign, error) {
	var model models.InvoiceDesignModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a design by its exact name
func (r *GormDesignRepository) FindByName(ctx context.Context, name string) (*printing.InvoiceDesign, error) {
	var model models.InvoiceDesignModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all designs with optional filtering
func (r *GormDesignRepository) FindAll(ctx context.Context, filter shared.Filter) ([]printing.InvoiceDesign, error) {
	var designModels []models.InvoiceDesignModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceDesignModel{}), filter)

	if err := query.Find(&designModels).Error; err != nil {
		return nil, err
	}

	designs := make([]printing.InvoiceDesign, len(designModels))
	for i, model := range designModels {
		designs[i] = *model.ToDomain()
	}
	return designs, nil
}

// FindDefault finds the default design. Returns nil if none is set.
func (r *GormDesignRepository) FindDefault(ctx context.Context) (*printing.InvoiceDesign, error) {
	var model models.InvoiceDesignModel
	if err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save saves a design (insert or update)
func (r *GormDesignRepository) Save(ctx context.Context, design *printing.InvoiceDesign) error {
	model := models.InvoiceDesignModelFromDomain(design)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a design by ID
func (r *GormDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceDesignModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total count of designs matching the filter
func (r *GormDesignRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvoiceDesignModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a design with the given name exists
func (r *GormDesignRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.InvoiceDesignModel{}).
		Where("name = ?", name)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClearDefault clears the default flag on all designs
func (r *GormDesignRepository) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.InvoiceDesignModel{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

// applyFilter applies filter options to the query
func (r *GormDesignRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, DesignSortFields, "")
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
func (r *GormDesignRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "is_default":
			query = query.Where("is_default = ?", value)
		case "page_size":
			query = query.Where("page_size = ?", value)
		}
	}

	return query
}

// Ensure GormDesignRepository implements DesignRepository
var _ printing.DesignRepository = (*GormDesignRepository)(nil)
