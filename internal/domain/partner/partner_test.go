package partner

import (
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPartner(t *testing.T) {
	branch := uuid.New()

	t.Run("creates a customer with upper-cased code", func(t *testing.T) {
		p, err := NewPartner(branch, PartnerTypeCustomer, "kh001", "Công ty May Thiên Phước", decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.Equal(t, "KH001", p.Code)
		assert.True(t, p.IsCustomer())
		assert.True(t, p.DebtAmount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, branch, p.BranchID)
	})

	t.Run("rejects unknown partner types", func(t *testing.T) {
		_, err := NewPartner(branch, PartnerType("employee"), "X", "X", decimal.Zero)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects negative opening debt", func(t *testing.T) {
		_, err := NewPartner(branch, PartnerTypeSupplier, "NCC1", "Vải Sài Gòn", decimal.NewFromInt(-1))
		assert.True(t, shared.IsValidation(err))
	})
}

func TestParsePartnerType(t *testing.T) {
	pt, err := ParsePartnerType(" Supplier ")
	require.NoError(t, err)
	assert.Equal(t, PartnerTypeSupplier, pt)

	_, err = ParsePartnerType("bank")
	assert.True(t, shared.IsValidation(err))
}

func TestPartner_ReduceDebtFloorsAtZero(t *testing.T) {
	p, err := NewPartner(uuid.New(), PartnerTypeCustomer, "KH1", "A", decimal.NewFromInt(100))
	require.NoError(t, err)

	reduced := p.ReduceDebt(decimal.NewFromInt(40))
	assert.True(t, reduced.Equal(decimal.NewFromInt(40)))
	assert.True(t, p.DebtAmount.Equal(decimal.NewFromInt(60)))

	reduced = p.ReduceDebt(decimal.NewFromInt(90))
	assert.True(t, reduced.Equal(decimal.NewFromInt(60)))
	assert.True(t, p.DebtAmount.IsZero())
	assert.Equal(t, 3, p.GetVersion())
}

func TestPartner_IncreaseDebt(t *testing.T) {
	p, err := NewPartner(uuid.New(), PartnerTypeSupplier, "NCC1", "A", decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, p.IncreaseDebt(decimal.NewFromInt(250)))
	assert.True(t, p.DebtAmount.Equal(decimal.NewFromInt(250)))
	assert.ErrorIs(t, p.IncreaseDebt(decimal.NewFromInt(-5)), shared.ErrInvalidAmount)
}
