package persistence

import (
	"context"
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormBalanceRepository_Quantities(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBalanceRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	fabric := catalog.MaterialRef(uuid.New())
	shirt := catalog.ProductRef(uuid.New())

	t.Run("absent rows read as zero", func(t *testing.T) {
		q, err := repo.Quantities(ctx, warehouseID, []catalog.ItemRef{fabric, shirt})
		require.NoError(t, err)
		require.Len(t, q, 2)
		assert.True(t, q[fabric.Key()].IsZero())
		assert.True(t, q[shirt.Key()].IsZero())
	})

	b, err := repo.GetOrCreateForUpdate(ctx, warehouseID, fabric)
	require.NoError(t, err)
	require.NoError(t, b.Increase(vnd(120)))
	require.NoError(t, repo.Save(ctx, b))

	t.Run("reads saved quantities", func(t *testing.T) {
		q, err := repo.Quantities(ctx, warehouseID, []catalog.ItemRef{fabric, shirt})
		require.NoError(t, err)
		assert.True(t, q[fabric.Key()].Equal(vnd(120)))
		assert.True(t, q[shirt.Key()].IsZero())
	})

	t.Run("other warehouses are not counted", func(t *testing.T) {
		q, err := repo.Quantities(ctx, uuid.New(), []catalog.ItemRef{fabric})
		require.NoError(t, err)
		assert.True(t, q[fabric.Key()].IsZero())
	})
}

func TestGormBalanceRepository_GetOrCreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBalanceRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	item := catalog.ProductRef(uuid.New())

	first, err := repo.GetOrCreateForUpdate(ctx, warehouseID, item)
	require.NoError(t, err)
	assert.True(t, first.Quantity.IsZero())
	require.NoError(t, first.Increase(vnd(5)))
	require.NoError(t, repo.Save(ctx, first))

	second, err := repo.GetOrCreateForUpdate(ctx, warehouseID, item)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Quantity.Equal(vnd(5)))

	rows, err := repo.ListByWarehouse(ctx, warehouseID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGormBalanceRepository_InvalidRef(t *testing.T) {
	repo := NewGormBalanceRepository(setupTestDB(t))

	_, err := repo.GetOrCreateForUpdate(context.Background(), uuid.New(), catalog.ItemRef{})
	assert.Error(t, err)
}
