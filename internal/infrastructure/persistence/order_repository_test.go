package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	customer := seedPartner(t, db, partner.PartnerTypeCustomer, "KH001")
	o := seedOrder(t, db, customer, "DH2410180001", 250000, time.Now().UTC())

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "DH2410180001", found.Code)
	assert.Equal(t, trade.OrderKindSales, found.Kind)
	assert.True(t, found.FinalAmount.Equal(vnd(250000)))
	assert.Equal(t, trade.PaymentStatusUnpaid, found.PaymentStatus)
	require.Len(t, found.Lines, 1)
	assert.True(t, found.Lines[0].Amount().Equal(vnd(250000)))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, shared.IsNotFound(err))
}

func TestGormOrderRepository_DuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	customer := seedPartner(t, db, partner.PartnerTypeCustomer, "KH001")
	seedOrder(t, db, customer, "DH2410180001", 100000, time.Now().UTC())

	line, err := trade.NewOrderLine(catalog.ProductRef(uuid.New()), vnd(1), vnd(1))
	require.NoError(t, err)
	dup, err := trade.NewOrder(trade.OrderKindSales, "DH2410180001", customer.ID, []trade.OrderLine{line}, vnd(0), uuid.New())
	require.NoError(t, err)

	err = NewGormOrderRepository(db).Create(context.Background(), dup)
	assert.True(t, shared.IsConflict(err))
}

func TestGormOrderRepository_FindOpenByPartner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	customer := seedPartner(t, db, partner.PartnerTypeCustomer, "KH001")
	other := seedPartner(t, db, partner.PartnerTypeCustomer, "KH002")
	base := time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC)

	newest := seedOrder(t, db, customer, "DH2410030001", 300000, base.Add(48*time.Hour))
	oldest := seedOrder(t, db, customer, "DH2410010001", 100000, base)
	paid := seedOrder(t, db, customer, "DH2410020001", 200000, base.Add(24*time.Hour))
	cancelled := seedOrder(t, db, customer, "DH2410020002", 200000, base.Add(25*time.Hour))
	seedOrder(t, db, other, "DH2410010002", 500000, base)

	_, err := paid.ApplyPayment(vnd(200000))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, paid))
	require.NoError(t, cancelled.Cancel())
	require.NoError(t, repo.Save(ctx, cancelled))

	open, err := repo.FindOpenByPartnerForUpdate(ctx, customer.ID, trade.OrderKindSales)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, oldest.ID, open[0].ID)
	assert.Equal(t, newest.ID, open[1].ID)

	none, err := repo.FindOpenByPartner(ctx, customer.ID, trade.OrderKindPurchase)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormOrderRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	customer := seedPartner(t, db, partner.PartnerTypeCustomer, "KH001")
	o := seedOrder(t, db, customer, "DH2410180001", 400000, time.Now().UTC())

	applied, err := o.ApplyPayment(vnd(150000))
	require.NoError(t, err)
	assert.True(t, applied.Equal(vnd(150000)))
	require.NoError(t, repo.Save(ctx, o))

	found, err := repo.FindByIDForUpdate(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, found.PaidAmount.Equal(vnd(150000)))
	assert.Equal(t, trade.PaymentStatusPartial, found.PaymentStatus)

	t.Run("missing order", func(t *testing.T) {
		ghost := *o
		ghost.ID = uuid.New()
		assert.True(t, shared.IsNotFound(repo.Save(ctx, &ghost)))
	})
}

func TestGormOrderRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	customer := seedPartner(t, db, partner.PartnerTypeCustomer, "KH001")
	supplier := seedPartner(t, db, partner.PartnerTypeSupplier, "NCC01")
	seedOrder(t, db, customer, "DH2410180001", 100000, time.Now().UTC())
	seedOrder(t, db, customer, "DH2410180002", 100000, time.Now().UTC())
	seedOrder(t, db, supplier, "DM2410180001", 100000, time.Now().UTC())

	list, total, err := repo.FindAll(ctx, trade.OrderFilter{
		Filter:    shared.Filter{Page: 1, PageSize: 10},
		Kind:      trade.OrderKindSales,
		PartnerID: &customer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = repo.FindAll(ctx, trade.OrderFilter{
		Filter: shared.Filter{Page: 1, PageSize: 10, Filters: map[string]any{"search": "DM24"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, trade.OrderKindPurchase, list[0].Kind)
}
