package inventory

import (
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, ref catalog.ItemRef, qty int64) TransactionLine {
	t.Helper()
	l, err := NewTransactionLine(ref, decimal.NewFromInt(qty), decimal.NullDecimal{})
	require.NoError(t, err)
	return l
}

func TestTransactionStatus_TransitionTable(t *testing.T) {
	assert.True(t, TransactionStatusPending.CanTransitionTo(TransactionStatusApproved))
	assert.True(t, TransactionStatusPending.CanTransitionTo(TransactionStatusRejected))
	assert.False(t, TransactionStatusApproved.CanTransitionTo(TransactionStatusRejected))
	assert.False(t, TransactionStatusRejected.CanTransitionTo(TransactionStatusApproved))
	assert.False(t, TransactionStatusApproved.CanTransitionTo(TransactionStatusApproved))
	assert.True(t, TransactionStatusApproved.IsTerminal())
	assert.True(t, TransactionStatusRejected.IsTerminal())
	assert.False(t, TransactionStatusPending.IsTerminal())
	assert.False(t, TransactionStatus("DRAFT").IsValid())
}

func TestTransactionType_CodePrefix(t *testing.T) {
	assert.Equal(t, "PN", TransactionTypeReceipt.CodePrefix())
	assert.Equal(t, "PX", TransactionTypeIssue.CodePrefix())
	assert.Equal(t, "PCK", TransactionTypeTransfer.CodePrefix())
}

func TestNewInventoryTransaction_Shape(t *testing.T) {
	w1, w2 := uuid.New(), uuid.New()
	user := uuid.New()
	l := line(t, catalog.MaterialRef(uuid.New()), 5)

	t.Run("issue requires a source warehouse", func(t *testing.T) {
		_, err := NewInventoryTransaction(TransactionTypeIssue, nil, &w1, []TransactionLine{l}, "", user)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("receipt requires a destination warehouse", func(t *testing.T) {
		_, err := NewInventoryTransaction(TransactionTypeReceipt, &w1, nil, []TransactionLine{l}, "", user)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("receipt drops a stray source warehouse", func(t *testing.T) {
		tx, err := NewInventoryTransaction(TransactionTypeReceipt, &w1, &w2, []TransactionLine{l}, "", user)
		require.NoError(t, err)
		assert.Nil(t, tx.FromWarehouseID)
	})

	t.Run("transfer to the same warehouse is rejected", func(t *testing.T) {
		_, err := NewInventoryTransaction(TransactionTypeTransfer, &w1, &w1, []TransactionLine{l}, "", user)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("empty documents are rejected", func(t *testing.T) {
		_, err := NewInventoryTransaction(TransactionTypeIssue, &w1, nil, nil, "", user)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("new transactions start pending", func(t *testing.T) {
		tx, err := NewInventoryTransaction(TransactionTypeTransfer, &w1, &w2, []TransactionLine{l}, " chuyển kho ", user)
		require.NoError(t, err)
		assert.Equal(t, TransactionStatusPending, tx.Status)
		assert.Equal(t, "chuyển kho", tx.Notes)
	})
}

func TestNewTransactionLine_Validation(t *testing.T) {
	_, err := NewTransactionLine(catalog.ItemRef{}, decimal.NewFromInt(1), decimal.NullDecimal{})
	assert.True(t, shared.IsValidation(err))

	_, err = NewTransactionLine(catalog.ProductRef(uuid.New()), decimal.Zero, decimal.NullDecimal{})
	assert.True(t, shared.IsValidation(err))

	_, err = NewTransactionLine(catalog.ProductRef(uuid.New()), decimal.NewFromInt(1), decimal.NewNullDecimal(decimal.NewFromInt(-1)))
	assert.True(t, shared.IsValidation(err))

	l, err := NewTransactionLine(catalog.ProductRef(uuid.New()), decimal.NewFromInt(3), decimal.NewNullDecimal(decimal.NewFromInt(20000)))
	require.NoError(t, err)
	assert.True(t, l.Amount().Equal(decimal.NewFromInt(60000)))
}

func TestInventoryTransaction_ApproveAndReject(t *testing.T) {
	w := uuid.New()
	user := uuid.New()

	newTx := func() *InventoryTransaction {
		tx, err := NewInventoryTransaction(TransactionTypeIssue, &w, nil, []TransactionLine{line(t, catalog.MaterialRef(uuid.New()), 1)}, "", user)
		require.NoError(t, err)
		require.NoError(t, tx.AssignCode("PX2410180001"))
		return tx
	}

	t.Run("approve records approver and raises an event", func(t *testing.T) {
		tx := newTx()
		require.NoError(t, tx.Approve(user))
		assert.Equal(t, TransactionStatusApproved, tx.Status)
		require.NotNil(t, tx.ApprovedBy)
		assert.Equal(t, user, *tx.ApprovedBy)
		events := tx.PullDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeTransactionApproved, events[1].EventType())
	})

	t.Run("approved transactions cannot be approved or rejected again", func(t *testing.T) {
		tx := newTx()
		require.NoError(t, tx.Approve(user))
		assert.True(t, shared.IsConflict(tx.Approve(user)))
		assert.True(t, shared.IsConflict(tx.Reject(user, "late")))
		assert.Equal(t, TransactionStatusApproved, tx.Status)
	})

	t.Run("rejected transactions are terminal", func(t *testing.T) {
		tx := newTx()
		require.NoError(t, tx.Reject(user, " sai số lượng "))
		assert.Equal(t, "sai số lượng", tx.RejectReason)
		assert.True(t, shared.IsConflict(tx.Approve(user)))
		assert.Equal(t, TransactionStatusRejected, tx.Status)
	})

	t.Run("code can only be assigned once", func(t *testing.T) {
		tx := newTx()
		assert.True(t, shared.IsConflict(tx.AssignCode("PX2410180002")))
	})
}

func TestInventoryTransaction_Movements(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	m1 := catalog.MaterialRef(uuid.New())

	tx, err := NewInventoryTransaction(TransactionTypeTransfer, &from, &to,
		[]TransactionLine{line(t, m1, 10), line(t, m1, 5)}, "", uuid.New())
	require.NoError(t, err)

	moves := tx.Movements()
	require.Len(t, moves, 2)
	byWarehouse := map[uuid.UUID]decimal.Decimal{}
	for _, m := range moves {
		byWarehouse[m.WarehouseID] = m.Delta
	}
	assert.True(t, byWarehouse[from].Equal(decimal.NewFromInt(-15)))
	assert.True(t, byWarehouse[to].Equal(decimal.NewFromInt(15)))

	demand := tx.OutboundDemand()
	assert.True(t, demand[m1.Key()].Equal(decimal.NewFromInt(15)))
}
