package persistence

import (
	"context"
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProductionOrder(t *testing.T, code string) *production.ProductionOrder {
	t.Helper()
	lines := []production.ProductionLine{
		{ID: uuid.New(), ProductID: uuid.New(), Quantity: vnd(100)},
		{ID: uuid.New(), ProductID: uuid.New(), Quantity: vnd(40)},
	}
	p, err := production.NewProductionOrder(code, uuid.New(), lines, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	return p
}

func TestGormProductionOrderRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()

	p := newTestProductionOrder(t, "LSX2410180001")
	require.NoError(t, repo.Create(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, production.StepMaterialImport, found.CurrentStep)
	assert.Equal(t, production.ProductionStatusPending, found.Status)
	assert.Len(t, found.Lines, 2)

	actor := uuid.New()
	require.NoError(t, p.RecordMaterialIssue(uuid.New(), actor))
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, p.AdvanceTo(production.StepCutting, actor, "bắt đầu cắt"))
	require.NoError(t, repo.Save(ctx, p))
	// saving again must not duplicate stored logs
	require.NoError(t, repo.Save(ctx, p))

	found, err = repo.FindByIDForUpdate(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, production.StepCutting, found.CurrentStep)
	assert.Equal(t, production.ProductionStatusInProgress, found.Status)
	assert.NotNil(t, found.MaterialIssueTxID)
	assert.NotNil(t, found.StartedAt)
	require.Len(t, found.StepLogs, len(p.StepLogs))
	assert.Equal(t, production.StepCutting, found.StepLogs[len(found.StepLogs)-1].ToStep)

	list, total, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, Filters: map[string]any{"status": string(production.ProductionStatusInProgress)}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestGormProductionOrderRepository_SaveMissing(t *testing.T) {
	repo := NewGormProductionOrderRepository(setupTestDB(t))

	err := repo.Save(context.Background(), newTestProductionOrder(t, "LSX2410180009"))
	assert.True(t, shared.IsNotFound(err))
}

func TestGormBOMRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBOMRepository(db)
	ctx := context.Background()

	shirt, trousers, fabric, button := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	for _, l := range []struct {
		product, material uuid.UUID
		perUnit           int64
	}{{shirt, fabric, 2}, {shirt, button, 6}, {trousers, fabric, 3}} {
		line, err := production.NewBOMLine(l.product, l.material, vnd(l.perUnit), "")
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, line))
	}

	replacement, err := production.NewBOMLine(shirt, fabric, vnd(4), "vải dày hơn")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, replacement))

	lines, err := repo.FindByProducts(ctx, []uuid.UUID{shirt})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	for _, l := range lines {
		if l.MaterialID == fabric {
			assert.True(t, l.QuantityPerUnit.Equal(vnd(4)))
			assert.Equal(t, "vải dày hơn", l.Notes)
		}
	}

	all, err := repo.FindByProducts(ctx, []uuid.UUID{shirt, trousers})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := repo.FindByProducts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
