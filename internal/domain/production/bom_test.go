package production

import (
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMaterialRequirements(t *testing.T) {
	shirt, trousers := uuid.New(), uuid.New()
	fabric, button := uuid.New(), uuid.New()

	bom := []BOMLine{
		{ProductID: shirt, MaterialID: fabric, QuantityPerUnit: decimal.RequireFromString("1.5")},
		{ProductID: shirt, MaterialID: button, QuantityPerUnit: decimal.NewFromInt(6)},
		{ProductID: trousers, MaterialID: fabric, QuantityPerUnit: decimal.NewFromInt(2)},
	}
	lines := []ProductionLine{
		{ProductID: shirt, Quantity: decimal.NewFromInt(100)},
		{ProductID: trousers, Quantity: decimal.NewFromInt(50)},
	}

	reqs := ComputeMaterialRequirements(lines, bom)
	require.Len(t, reqs, 2)

	got := map[uuid.UUID]decimal.Decimal{}
	for _, r := range reqs {
		got[r.MaterialID] = r.Quantity
	}
	assert.True(t, got[fabric].Equal(decimal.NewFromInt(250)), "fabric = %s", got[fabric])
	assert.True(t, got[button].Equal(decimal.NewFromInt(600)), "button = %s", got[button])
	assert.True(t, reqs[0].MaterialID.String() < reqs[1].MaterialID.String())
}

func TestComputeMaterialRequirements_NoBOM(t *testing.T) {
	lines := []ProductionLine{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(10)}}
	assert.Empty(t, ComputeMaterialRequirements(lines, nil))
	assert.Equal(t, []uuid.UUID{lines[0].ProductID}, ProductsWithoutBOM(lines, nil))
}

func TestNewBOMLine(t *testing.T) {
	_, err := NewBOMLine(uuid.New(), uuid.New(), decimal.Zero, "")
	assert.True(t, shared.IsValidation(err))
	_, err = NewBOMLine(uuid.Nil, uuid.New(), decimal.NewFromInt(1), "")
	assert.True(t, shared.IsValidation(err))

	b, err := NewBOMLine(uuid.New(), uuid.New(), decimal.NewFromInt(2), "vải chính")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, b.ID)
}
