package finance

import (
	"testing"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAllocateFIFO(t *testing.T) {
	now := time.Now()
	older := AllocationTarget{ID: uuid.New(), Code: "DH1", Outstanding: amt(100), CreatedAt: now.Add(-48 * time.Hour)}
	newer := AllocationTarget{ID: uuid.New(), Code: "DH2", Outstanding: amt(50), CreatedAt: now.Add(-24 * time.Hour)}

	t.Run("oldest order is paid off before the newer one", func(t *testing.T) {
		// passed newest first on purpose
		res, err := AllocateFIFO(amt(120), []AllocationTarget{newer, older})
		require.NoError(t, err)
		require.Len(t, res.Allocations, 2)

		assert.Equal(t, older.ID, res.Allocations[0].TargetID)
		assert.True(t, res.Allocations[0].Amount.Equal(amt(100)))
		assert.True(t, res.Allocations[0].FullyPaid)

		assert.Equal(t, newer.ID, res.Allocations[1].TargetID)
		assert.True(t, res.Allocations[1].Amount.Equal(amt(20)))
		assert.False(t, res.Allocations[1].FullyPaid)

		assert.True(t, res.TotalAllocated.Equal(amt(120)))
		assert.True(t, res.Unallocated.IsZero())
	})

	t.Run("stops once the payment is exhausted", func(t *testing.T) {
		res, err := AllocateFIFO(amt(60), []AllocationTarget{older, newer})
		require.NoError(t, err)
		require.Len(t, res.Allocations, 1)
		assert.True(t, res.Allocations[0].Amount.Equal(amt(60)))
	})

	t.Run("excess is reported as unallocated", func(t *testing.T) {
		res, err := AllocateFIFO(amt(200), []AllocationTarget{older, newer})
		require.NoError(t, err)
		assert.True(t, res.TotalAllocated.Equal(amt(150)))
		assert.True(t, res.Unallocated.Equal(amt(50)))
	})

	t.Run("settled targets are skipped", func(t *testing.T) {
		done := AllocationTarget{ID: uuid.New(), Code: "DH0", Outstanding: decimal.Zero, CreatedAt: now.Add(-72 * time.Hour)}
		res, err := AllocateFIFO(amt(10), []AllocationTarget{done, older})
		require.NoError(t, err)
		require.Len(t, res.Allocations, 1)
		assert.Equal(t, older.ID, res.Allocations[0].TargetID)
	})

	t.Run("equal timestamps fall back to code order", func(t *testing.T) {
		a := AllocationTarget{ID: uuid.New(), Code: "DH-B", Outstanding: amt(10), CreatedAt: now}
		b := AllocationTarget{ID: uuid.New(), Code: "DH-A", Outstanding: amt(10), CreatedAt: now}
		res, err := AllocateFIFO(amt(5), []AllocationTarget{a, b})
		require.NoError(t, err)
		assert.Equal(t, "DH-A", res.Allocations[0].TargetCode)
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		_, err := AllocateFIFO(decimal.Zero, []AllocationTarget{older})
		assert.True(t, shared.IsValidation(err))
	})

	assert.True(t, OpenTotal([]AllocationTarget{older, newer}).Equal(amt(150)))
}
