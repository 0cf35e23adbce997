package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GBR-422777/invoiceninja/internal/domain/printing"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/persistence/models"
)

// setupDesignTestDB creates an in-memory SQLite database for testing
func setupDesignTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.InvoiceDesignModel{})
	require.NoError(t, err)

	return db
}

func newDesign(t *testing.T, name string) *printing.InvoiceDesign {
	t.Helper()
	design, err := printing.NewInvoiceDesign(name, `{"content":[]}`)
	require.NoError(t, err)
	return design
}

func TestGormDesignRepository_SaveAndFindByID(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)
	ctx := context.Background()

	design := newDesign(t, "Clean")
	design.Margins = printing.Margins{Left: 40, Top: 80, Right: 40, Bottom: 60}
	require.NoError(t, repo.Save(ctx, design))

	found, err := repo.FindByID(ctx, design.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clean", found.Name)
	assert.Equal(t, `{"content":[]}`, found.Content)
	assert.Equal(t, printing.PageSizeA4, found.PageSize)
	assert.Equal(t, 80.0, found.Margins.Top)
	assert.Equal(t, printing.DesignStatusActive, found.Status)
}

func TestGormDesignRepository_FindByID_NotFound(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDesignRepository_FindByName(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newDesign(t, "Bold")))

	found, err := repo.FindByName(ctx, "Bold")
	require.NoError(t, err)
	assert.Equal(t, "Bold", found.Name)

	_, err = repo.FindByName(ctx, "Missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDesignRepository_FindAll_SearchAndPagination(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Clean", "Bold", "Modern", "Plain"} {
		require.NoError(t, repo.Save(ctx, newDesign(t, name)))
	}

	filter := shared.DefaultFilter()
	filter.Search = "old"
	designs, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, "Bold", designs[0].Name)

	filter = shared.DefaultFilter()
	filter.PageSize = 2
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	designs, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, designs, 2)
	assert.Equal(t, "Bold", designs[0].Name)
	assert.Equal(t, "Clean", designs[1].Name)

	total, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestGormDesignRepository_DefaultFlag(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)
	ctx := context.Background()

	first := newDesign(t, "Clean")
	require.NoError(t, first.SetAsDefault())
	require.NoError(t, repo.Save(ctx, first))

	found, err := repo.FindDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	second := newDesign(t, "Bold")
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.ClearDefault(ctx))
	require.NoError(t, second.SetAsDefault())
	require.NoError(t, repo.Save(ctx, second))

	found, err = repo.FindDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, second.ID, found.ID)
}

func TestGormDesignRepository_FindDefault_NoneSet(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)

	found, err := repo.FindDefault(context.Background())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormDesignRepository_ExistsByName(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)
	ctx := context.Background()

	design := newDesign(t, "Clean")
	require.NoError(t, repo.Save(ctx, design))

	exists, err := repo.ExistsByName(ctx, "Clean", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// excluding the design itself sees the name as free
	exists, err = repo.ExistsByName(ctx, "Clean", &design.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByName(ctx, "Other", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormDesignRepository_Delete(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)
	ctx := context.Background()

	design := newDesign(t, "Clean")
	require.NoError(t, repo.Save(ctx, design))
	require.NoError(t, repo.Delete(ctx, design.ID))

	_, err := repo.FindByID(ctx, design.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, design.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDesignRepository_StatusFilter(t *testing.T) {
	db := setupDesignTestDB(t)
	repo := NewGormDesignRepository(db)
	ctx := context.Background()

	active := newDesign(t, "Clean")
	require.NoError(t, repo.Save(ctx, active))

	retired := newDesign(t, "Legacy")
	require.NoError(t, retired.Deactivate())
	require.NoError(t, repo.Save(ctx, retired))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = "ACTIVE"
	designs, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, "Clean", designs[0].Name)
}
