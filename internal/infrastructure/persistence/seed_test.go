package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

func TestEnsureDefaultDesign(t *testing.T) {
	t.Run("seeds the built-in design on an empty database", func(t *testing.T) {
		db := setupDesignTestDB(t)
		repo := NewGormDesignRepository(db)

		design, err := EnsureDefaultDesign(t.Context(), repo)
		require.NoError(t, err)
		require.NotNil(t, design)

		assert.Equal(t, DefaultDesignName, design.Name)
		assert.True(t, design.IsDefault)
		assert.Contains(t, design.Content, "$invoiceLineItems")
		assert.Contains(t, design.Content, "$subtotals")
		assert.Contains(t, design.Content, "$entityTypeUC")

		found, err := repo.FindDefault(t.Context())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, design.ID, found.ID)
	})

	t.Run("is idempotent across restarts", func(t *testing.T) {
		db := setupDesignTestDB(t)
		repo := NewGormDesignRepository(db)

		first, err := EnsureDefaultDesign(t.Context(), repo)
		require.NoError(t, err)

		second, err := EnsureDefaultDesign(t.Context(), repo)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		count, err := repo.Count(t.Context(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("keeps a user-chosen default", func(t *testing.T) {
		db := setupDesignTestDB(t)
		repo := NewGormDesignRepository(db)

		custom := newDesign(t, "Bold")
		require.NoError(t, custom.SetAsDefault())
		require.NoError(t, repo.Save(t.Context(), custom))

		design, err := EnsureDefaultDesign(t.Context(), repo)
		require.NoError(t, err)
		assert.Equal(t, "Bold", design.Name)

		count, err := repo.Count(t.Context(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("promotes an existing seeded design without the flag", func(t *testing.T) {
		db := setupDesignTestDB(t)
		repo := NewGormDesignRepository(db)

		existing := newDesign(t, DefaultDesignName)
		require.NoError(t, repo.Save(t.Context(), existing))

		design, err := EnsureDefaultDesign(t.Context(), repo)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, design.ID)
		assert.True(t, design.IsDefault)
	})
}
