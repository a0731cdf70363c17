package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDebtRecordRepository_GetOrCreateForUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRecordRepository(db)
	ctx := context.Background()

	customer := seedPartner(t, db, partner.PartnerTypeCustomer, "KH001")
	o := seedOrder(t, db, customer, "DH2410180001", 400000, time.Now().UTC())
	dir, err := finance.DirectionFor(partner.PartnerTypeCustomer)
	require.NoError(t, err)

	first, err := repo.GetOrCreateForUpdate(ctx, finance.NewDebtRecord(dir.KeyFor(o.ID), customer.ID, vnd(400000), vnd(0)))
	require.NoError(t, err)
	assert.True(t, first.RemainingAmount.Equal(vnd(400000)))
	assert.Equal(t, finance.DebtStatusPartial, first.Status)

	require.NoError(t, first.ApplyPayment(vnd(100000)))
	require.NoError(t, repo.Save(ctx, first))

	// a second seed with the same key returns the stored record untouched
	second, err := repo.GetOrCreateForUpdate(ctx, finance.NewDebtRecord(dir.KeyFor(o.ID), customer.ID, vnd(400000), vnd(0)))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.RemainingAmount.Equal(vnd(300000)))

	// the payable direction of the same order is a separate record
	payable := finance.DebtKey{OrderID: o.ID, ReferenceType: finance.ReferenceTypePurchaseOrder, DebtType: finance.DebtTypePayable}
	third, err := repo.GetOrCreateForUpdate(ctx, finance.NewDebtRecord(payable, customer.ID, vnd(400000), vnd(0)))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)

	list, total, err := repo.FindAll(ctx, finance.DebtFilter{
		Filter:    shared.Filter{Page: 1, PageSize: 10},
		PartnerID: &customer.ID,
		DebtType:  finance.DebtTypeReceivable,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestGormDebtRecordRepository_SaveMissing(t *testing.T) {
	repo := NewGormDebtRecordRepository(setupTestDB(t))
	rec := finance.NewDebtRecord(finance.DebtKey{OrderID: uuid.New(), ReferenceType: finance.ReferenceTypeOrder, DebtType: finance.DebtTypeReceivable}, uuid.New(), vnd(1), vnd(0))

	err := repo.Save(context.Background(), rec)
	assert.True(t, shared.IsNotFound(err))

	_, err = repo.FindByID(context.Background(), rec.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestGormDebtPaymentRepository(t *testing.T) {
	db := setupTestDB(t)
	records := NewGormDebtRecordRepository(db)
	payments := NewGormDebtPaymentRepository(db)
	ctx := context.Background()

	customer := seedPartner(t, db, partner.PartnerTypeCustomer, "KH001")
	o := seedOrder(t, db, customer, "DH2410180001", 400000, time.Now().UTC())
	dir, err := finance.DirectionFor(partner.PartnerTypeCustomer)
	require.NoError(t, err)
	rec, err := records.GetOrCreateForUpdate(ctx, finance.NewDebtRecord(dir.KeyFor(o.ID), customer.ID, vnd(400000), vnd(0)))
	require.NoError(t, err)

	last, err := payments.LastPaymentDate(ctx, customer.ID)
	require.NoError(t, err)
	assert.Nil(t, last)

	day1 := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 10, 18, 0, 0, 0, 0, time.UTC)
	for _, p := range []struct {
		amount int64
		date   time.Time
	}{{150000, day2}, {100000, day1}} {
		payment, err := finance.NewDebtPayment(uuid.New(), rec, vnd(p.amount), p.date, finance.PaymentMethodCash, nil, "", uuid.New())
		require.NoError(t, err)
		require.NoError(t, payments.Append(ctx, payment))
	}

	list, err := payments.ListByDebtRecord(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Amount.Equal(vnd(100000)))
	assert.True(t, list[1].Amount.Equal(vnd(150000)))
	assert.Equal(t, o.ID, list[0].OrderID)
	assert.Equal(t, finance.PaymentMethodCash, list[0].Method)

	last, err = payments.LastPaymentDate(ctx, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(day2))
}
