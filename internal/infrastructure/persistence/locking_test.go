package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests pin the SQL emitted for PostgreSQL, where row locks and upserts matter.

func TestGormPartnerRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "partners" WHERE id = \$1 ORDER BY .* LIMIT \$2 FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "code", "name", "debt_amount"}).
			AddRow(id, "customer", "KH001", "Công ty May Việt", "150000"))

	p, err := NewGormPartnerRepository(gormDB).FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "KH001", p.Code)
	assert.True(t, p.DebtAmount.Equal(vnd(150000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_FindOpenByPartnerForUpdate_LocksRows(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	partnerID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE partner_id = $1 AND kind = $2 AND status <> $3 AND final_amount - paid_amount > 0 ORDER BY created_at ASC,code ASC FOR UPDATE`)).
		WithArgs(partnerID, trade.OrderKindSales, trade.OrderStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	orders, err := NewGormOrderRepository(gormDB).FindOpenByPartnerForUpdate(context.Background(), partnerID, trade.OrderKindSales)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDebtRecordRepository_GetOrCreateForUpdate_Upserts(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	seed := finance.NewDebtRecord(finance.DebtKey{
		OrderID:       uuid.New(),
		ReferenceType: finance.ReferenceTypeOrder,
		DebtType:      finance.DebtTypeReceivable,
	}, uuid.New(), vnd(400000), vnd(0))

	mock.ExpectExec(`INSERT INTO "debt_records" .* ON CONFLICT \("order_id","reference_type","debt_type"\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "debt_records" WHERE order_id = \$1 AND reference_type = \$2 AND debt_type = \$3 ORDER BY .* LIMIT \$4 FOR UPDATE`).
		WithArgs(seed.OrderID, seed.ReferenceType, seed.DebtType, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "reference_type", "debt_type", "partner_id", "original_amount", "remaining_amount", "status"}).
			AddRow(seed.ID, seed.OrderID, "ORDER", "RECEIVABLE", seed.PartnerID, "400000", "250000", "PARTIAL"))

	rec, err := NewGormDebtRecordRepository(gormDB).GetOrCreateForUpdate(context.Background(), seed)
	require.NoError(t, err)
	assert.True(t, rec.RemainingAmount.Equal(vnd(250000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBalanceRepository_GetOrCreateForUpdate_Upserts(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	warehouseID, materialID := uuid.New(), uuid.New()
	mock.ExpectExec(`INSERT INTO "inventory_balances" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "inventory_balances" WHERE warehouse_id = \$1 AND material_id = \$2 ORDER BY .* LIMIT \$3 FOR UPDATE`).
		WithArgs(warehouseID, materialID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "warehouse_id", "material_id", "quantity"}).
			AddRow(uuid.New(), warehouseID, materialID, "0"))

	b, err := NewGormBalanceRepository(gormDB).GetOrCreateForUpdate(context.Background(), warehouseID, catalog.MaterialRef(materialID))
	require.NoError(t, err)
	assert.True(t, b.Quantity.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInventoryTransactionRepository_FindByIDForUpdate_NotFound(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "inventory_transactions" WHERE id = \$1 ORDER BY .* LIMIT \$2 FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewGormInventoryTransactionRepository(gormDB).FindByIDForUpdate(context.Background(), id)
	assert.True(t, shared.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
