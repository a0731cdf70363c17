package finance

import (
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionFor_ReceiptPrefixes(t *testing.T) {
	in, err := DirectionFor(partner.PartnerTypeCustomer)
	require.NoError(t, err)
	out, err := DirectionFor(partner.PartnerTypeSupplier)
	require.NoError(t, err)

	assert.Equal(t, "PT", in.ReceiptPrefix)
	assert.Equal(t, "PC", out.ReceiptPrefix)

	t.Run("receipts never share a daily counter with stock documents", func(t *testing.T) {
		for _, tt := range []inventory.TransactionType{
			inventory.TransactionTypeReceipt,
			inventory.TransactionTypeIssue,
			inventory.TransactionTypeTransfer,
		} {
			assert.NotEqual(t, in.ReceiptPrefix, tt.CodePrefix(), tt)
			assert.NotEqual(t, out.ReceiptPrefix, tt.CodePrefix(), tt)
		}
	})
}
