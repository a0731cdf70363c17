package production_test

import (
	"context"
	"errors"
	"testing"

	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	appprod "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/production"
	apptrade "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plant struct {
	store    *testutil.MemStore
	svc      *appprod.ProductionService
	txs      *appinv.TransactionService
	pub      *testutil.RecordingPublisher
	matWh    *inventory.Warehouse
	prodWh   *inventory.Warehouse
	fabric   *catalog.Material
	button   *catalog.Material
	shirt    *catalog.Product
	trousers *catalog.Product
	salesID  uuid.UUID
	customer *partner.Partner
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func newPlant(t *testing.T) *plant {
	t.Helper()
	ctx := context.Background()
	store := testutil.NewMemStore()
	p := &plant{
		store:    store,
		pub:      testutil.NewRecordingPublisher(),
		matWh:    store.SeedWarehouse(t, "KNVL", inventory.WarehouseTypeMaterial),
		prodWh:   store.SeedWarehouse(t, "KTP", inventory.WarehouseTypeProduct),
		fabric:   store.SeedMaterial(t, "VAI", "m"),
		button:   store.SeedMaterial(t, "CUC", "cái"),
		shirt:    store.SeedProduct(t, "AOSOMI"),
		trousers: store.SeedProduct(t, "QUANTAY"),
		customer: store.SeedPartner(t, partner.PartnerTypeCustomer, "KH001", decimal.Zero),
	}
	p.svc = appprod.NewProductionService(store.ProductionScope(), store.ProductionOrderRepo(), store.BOMRepo(), store.BalanceRepo(), nil)
	p.svc.SetEventPublisher(p.pub)
	p.txs = appinv.NewTransactionService(store.InventoryScope(), store.TransactionRepo(), nil)

	bom := appprod.NewBOMService(store.ProductionScope(), store.BOMRepo())
	_, err := bom.Upsert(ctx, appprod.UpsertBOMRequest{ProductID: p.shirt.ID, Lines: []appprod.BOMLineRequest{
		{MaterialID: p.fabric.ID, QuantityPerUnit: d("1.5")},
		{MaterialID: p.button.ID, QuantityPerUnit: d("6")},
	}})
	require.NoError(t, err)
	_, err = bom.Upsert(ctx, appprod.UpsertBOMRequest{ProductID: p.trousers.ID, Lines: []appprod.BOMLineRequest{
		{MaterialID: p.fabric.ID, QuantityPerUnit: d("2")},
	}})
	require.NoError(t, err)

	orders := apptrade.NewOrderService(store.FinanceScope(), store.OrderRepo(), store.ItemRepo(), nil)
	sales, err := orders.Create(ctx, apptrade.CreateOrderRequest{
		Kind:      "SALES",
		PartnerID: p.customer.ID,
		Lines: []apptrade.OrderLineRequest{
			{ProductID: &p.shirt.ID, Quantity: d("100"), UnitPrice: d("150000")},
			{ProductID: &p.trousers.ID, Quantity: d("50"), UnitPrice: d("200000")},
			{MaterialID: &p.button.ID, Quantity: d("20"), UnitPrice: d("1000")},
		},
	}, testutil.TestUserID())
	require.NoError(t, err)
	p.salesID = sales.ID
	return p
}

func (p *plant) stock(fabric, buttons int64) {
	p.store.SetBalance(p.matWh.ID, catalog.MaterialRef(p.fabric.ID), decimal.NewFromInt(fabric))
	p.store.SetBalance(p.matWh.ID, catalog.MaterialRef(p.button.ID), decimal.NewFromInt(buttons))
}

func (p *plant) create(t *testing.T) *appprod.ProductionOrderResponse {
	t.Helper()
	resp, err := p.svc.Create(context.Background(), appprod.CreateProductionOrderRequest{
		SalesOrderID:        p.salesID,
		MaterialWarehouseID: p.matWh.ID,
		ProductWarehouseID:  p.prodWh.ID,
	}, testutil.TestUserID())
	require.NoError(t, err)
	return resp
}

func (p *plant) advance(id uuid.UUID, step production.ProductionStep) (*appprod.ProductionOrderResponse, error) {
	return p.svc.AdvanceStep(context.Background(), id, appprod.AdvanceStepRequest{NextStep: string(step)}, testutil.TestUserID())
}

func code(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func TestProduction_CreateCopiesProductLines(t *testing.T) {
	p := newPlant(t)
	po := p.create(t)

	assert.Regexp(t, `^SX\d{6}0001$`, po.Code)
	assert.Equal(t, string(production.StepMaterialImport), po.CurrentStep)
	assert.Equal(t, string(production.ProductionStatusPending), po.Status)
	require.Len(t, po.Lines, 2, "material lines of the sales order are not produced")
	assert.Nil(t, po.MaterialIssueTxID)
}

func TestProduction_CreateValidation(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()

	supplier := p.store.SeedPartner(t, partner.PartnerTypeSupplier, "NCC01", decimal.Zero)
	purchase := p.store.SeedOrder(t, supplier, testutil.VND(1_000), testutil.Day(2024, 10, 1))

	tests := []struct {
		name string
		req  appprod.CreateProductionOrderRequest
		kind func(error) bool
		code string
	}{
		{"purchase order", appprod.CreateProductionOrderRequest{SalesOrderID: purchase.ID, MaterialWarehouseID: p.matWh.ID, ProductWarehouseID: p.prodWh.ID}, shared.IsValidation, "NOT_A_SALES_ORDER"},
		{"unknown order", appprod.CreateProductionOrderRequest{SalesOrderID: uuid.New(), MaterialWarehouseID: p.matWh.ID, ProductWarehouseID: p.prodWh.ID}, shared.IsNotFound, "NOT_FOUND"},
		{"material warehouse holds products", appprod.CreateProductionOrderRequest{SalesOrderID: p.salesID, MaterialWarehouseID: p.prodWh.ID, ProductWarehouseID: p.prodWh.ID}, shared.IsValidation, "ITEM_TYPE_MISMATCH"},
		{"product warehouse holds materials", appprod.CreateProductionOrderRequest{SalesOrderID: p.salesID, MaterialWarehouseID: p.matWh.ID, ProductWarehouseID: p.matWh.ID}, shared.IsValidation, "ITEM_TYPE_MISMATCH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.svc.Create(ctx, tt.req, testutil.TestUserID())
			require.Error(t, err)
			assert.True(t, tt.kind(err), "unexpected error: %v", err)
			assert.Equal(t, tt.code, code(err))
		})
	}
}

func TestProduction_MaterialRequirements(t *testing.T) {
	p := newPlant(t)
	p.stock(200, 1000)
	po := p.create(t)

	reqs, err := p.svc.MaterialRequirements(context.Background(), po.ID)
	require.NoError(t, err)
	require.Len(t, reqs.Materials, 2)
	assert.Empty(t, reqs.ProductsWithoutBOM)

	byMaterial := map[uuid.UUID]appprod.MaterialRequirementResponse{}
	for _, m := range reqs.Materials {
		byMaterial[m.MaterialID] = m
	}
	fabric := byMaterial[p.fabric.ID]
	assert.True(t, fabric.Required.Equal(d("250")), fabric.Required.String())
	assert.True(t, fabric.Available.Equal(d("200")))
	assert.True(t, fabric.Shortage.Equal(d("50")))
	buttons := byMaterial[p.button.ID]
	assert.True(t, buttons.Required.Equal(d("600")))
	assert.True(t, buttons.Shortage.IsZero())

	again, err := p.svc.MaterialRequirements(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, reqs, again)
	assert.Empty(t, p.store.Transactions(), "planning never raises transactions")
}

func TestProduction_FullLifecycle(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()
	p.stock(300, 1000)
	po := p.create(t)

	cut, err := p.advance(po.ID, production.StepCutting)
	require.NoError(t, err)
	assert.Equal(t, string(production.StepCutting), cut.CurrentStep)
	assert.Equal(t, string(production.ProductionStatusInProgress), cut.Status)
	require.NotNil(t, cut.MaterialIssueTxID)

	issue, err := p.txs.GetByID(ctx, *cut.MaterialIssueTxID)
	require.NoError(t, err)
	assert.Equal(t, string(inventory.TransactionTypeIssue), issue.Type)
	assert.Equal(t, string(inventory.TransactionStatusPending), issue.Status)
	require.NotNil(t, issue.ProductionOrderID)
	assert.Equal(t, po.ID, *issue.ProductionOrderID)
	assert.Len(t, issue.Lines, 2)
	assert.True(t, p.store.Balance(p.matWh.ID, catalog.MaterialRef(p.fabric.ID)).Equal(d("300")), "stock moves only at approval")

	_, err = p.txs.Approve(ctx, issue.ID, testutil.TestUserID())
	require.NoError(t, err)
	assert.True(t, p.store.Balance(p.matWh.ID, catalog.MaterialRef(p.fabric.ID)).Equal(d("50")))
	assert.True(t, p.store.Balance(p.matWh.ID, catalog.MaterialRef(p.button.ID)).Equal(d("400")))

	for _, step := range []production.ProductionStep{production.StepSewing, production.StepFinishing, production.StepQC, production.StepWarehouseImport} {
		resp, err := p.advance(po.ID, step)
		require.NoError(t, err, "advance to %s", step)
		assert.Equal(t, string(step), resp.CurrentStep)
	}

	_, err = p.advance(po.ID, production.StepQC)
	assert.True(t, shared.IsConflict(err), "steps never move backwards")

	done, err := p.svc.RecordFinishedGoodsReceipt(ctx, po.ID, testutil.TestUserID())
	require.NoError(t, err)
	assert.Equal(t, string(production.ProductionStatusCompleted), done.Status)
	require.NotNil(t, done.FinishedGoodsTxID)
	require.NotNil(t, done.CompletedAt)
	assert.Len(t, done.StepLogs, 7)

	receipt, err := p.txs.GetByID(ctx, *done.FinishedGoodsTxID)
	require.NoError(t, err)
	assert.Equal(t, string(inventory.TransactionTypeReceipt), receipt.Type)
	require.NotNil(t, receipt.ToWarehouseID)
	assert.Equal(t, p.prodWh.ID, *receipt.ToWarehouseID)

	_, err = p.txs.Approve(ctx, receipt.ID, testutil.TestUserID())
	require.NoError(t, err)
	assert.True(t, p.store.Balance(p.prodWh.ID, catalog.ProductRef(p.shirt.ID)).Equal(d("100")))
	assert.True(t, p.store.Balance(p.prodWh.ID, catalog.ProductRef(p.trousers.ID)).Equal(d("50")))

	_, err = p.svc.RecordFinishedGoodsReceipt(ctx, po.ID, testutil.TestUserID())
	assert.True(t, shared.IsConflict(err))
	_, err = p.advance(po.ID, production.StepCutting)
	assert.True(t, shared.IsConflict(err))

	types := p.pub.Types()
	assert.Contains(t, types, production.EventTypeStepAdvanced)
	assert.Contains(t, types, production.EventTypeProductionCompleted)
	assert.Contains(t, types, inventory.EventTypeTransactionCreated)
}

func TestProduction_StepsCannotBeSkipped(t *testing.T) {
	p := newPlant(t)
	p.stock(300, 1000)
	po := p.create(t)

	_, err := p.advance(po.ID, production.StepSewing)
	assert.True(t, shared.IsConflict(err))
	assert.Equal(t, "INVALID_STEP_TRANSITION", code(err))
	assert.Empty(t, p.store.Transactions(), "a rejected advance raises no transaction")

	_, err = p.advance(po.ID, production.StepCutting)
	require.NoError(t, err)
	_, err = p.advance(po.ID, production.StepQC)
	assert.Equal(t, "INVALID_STEP_TRANSITION", code(err))

	_, err = p.advance(po.ID, "PACKING")
	assert.True(t, shared.IsValidation(err))

	_, err = p.svc.RecordFinishedGoodsReceipt(context.Background(), po.ID, testutil.TestUserID())
	assert.True(t, shared.IsConflict(err), "finished goods wait for WAREHOUSE_IMPORT")
}

func TestProduction_ShortageKeepsOrderAtMaterialImport(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()
	p.stock(100, 1000)
	po := p.create(t)

	_, err := p.advance(po.ID, production.StepCutting)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "INSUFFICIENT_STOCK", code(err))

	after, err := p.svc.GetByID(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, string(production.StepMaterialImport), after.CurrentStep)
	assert.Equal(t, string(production.ProductionStatusPending), after.Status)
	assert.Nil(t, after.MaterialIssueTxID)
	assert.Empty(t, after.StepLogs)
	assert.Empty(t, p.store.Transactions())

	p.stock(300, 1000)
	_, err = p.advance(po.ID, production.StepCutting)
	assert.NoError(t, err)
}

func TestProduction_RecordMaterialImportIsOneShot(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()
	p.stock(300, 1000)
	po := p.create(t)

	started, err := p.svc.RecordMaterialImport(ctx, po.ID, testutil.TestUserID())
	require.NoError(t, err)
	assert.Equal(t, string(production.StepMaterialImport), started.CurrentStep)
	assert.Equal(t, string(production.ProductionStatusInProgress), started.Status)
	require.NotNil(t, started.MaterialIssueTxID)

	_, err = p.svc.RecordMaterialImport(ctx, po.ID, testutil.TestUserID())
	assert.True(t, shared.IsConflict(err))

	cut, err := p.advance(po.ID, production.StepCutting)
	require.NoError(t, err)
	assert.Equal(t, *started.MaterialIssueTxID, *cut.MaterialIssueTxID, "advancing reuses the recorded issue")
	assert.Len(t, p.store.Transactions(), 1)
}

func TestProduction_ProductsWithoutBOM(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()
	p.stock(300, 1000)

	jacket := p.store.SeedProduct(t, "AOKHOAC")
	orders := apptrade.NewOrderService(p.store.FinanceScope(), p.store.OrderRepo(), p.store.ItemRepo(), nil)
	sales, err := orders.Create(ctx, apptrade.CreateOrderRequest{
		Kind:      "SALES",
		PartnerID: p.customer.ID,
		Lines:     []apptrade.OrderLineRequest{{ProductID: &jacket.ID, Quantity: d("10"), UnitPrice: d("500000")}},
	}, testutil.TestUserID())
	require.NoError(t, err)

	po, err := p.svc.Create(ctx, appprod.CreateProductionOrderRequest{
		SalesOrderID:        sales.ID,
		MaterialWarehouseID: p.matWh.ID,
		ProductWarehouseID:  p.prodWh.ID,
	}, testutil.TestUserID())
	require.NoError(t, err)

	reqs, err := p.svc.MaterialRequirements(ctx, po.ID)
	require.NoError(t, err)
	assert.Empty(t, reqs.Materials)
	assert.Equal(t, []uuid.UUID{jacket.ID}, reqs.ProductsWithoutBOM)

	_, err = p.advance(po.ID, production.StepCutting)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "NO_MATERIAL_REQUIREMENTS", code(err))
}

func TestBOMService_Upsert(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()
	bom := appprod.NewBOMService(p.store.ProductionScope(), p.store.BOMRepo())

	lines, err := bom.Upsert(ctx, appprod.UpsertBOMRequest{ProductID: p.shirt.ID, Lines: []appprod.BOMLineRequest{
		{MaterialID: p.fabric.ID, QuantityPerUnit: d("1.75")},
	}})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	current, err := bom.ForProduct(ctx, p.shirt.ID)
	require.NoError(t, err)
	require.Len(t, current, 2, "upsert replaces quantities and keeps other materials")
	for _, l := range current {
		if l.MaterialID == p.fabric.ID {
			assert.True(t, l.QuantityPerUnit.Equal(d("1.75")))
			assert.Equal(t, lines[0].ID, l.ID)
		}
	}

	_, err = bom.Upsert(ctx, appprod.UpsertBOMRequest{ProductID: p.shirt.ID, Lines: []appprod.BOMLineRequest{
		{MaterialID: p.fabric.ID, QuantityPerUnit: d("1")},
		{MaterialID: p.fabric.ID, QuantityPerUnit: d("2")},
	}})
	assert.Equal(t, "DUPLICATE_MATERIAL", code(err))

	_, err = bom.Upsert(ctx, appprod.UpsertBOMRequest{ProductID: uuid.New(), Lines: []appprod.BOMLineRequest{{MaterialID: p.fabric.ID, QuantityPerUnit: d("1")}}})
	assert.True(t, shared.IsNotFound(err))

	_, err = bom.Upsert(ctx, appprod.UpsertBOMRequest{ProductID: p.shirt.ID, Lines: []appprod.BOMLineRequest{{MaterialID: p.shirt.ID, QuantityPerUnit: d("1")}}})
	assert.True(t, shared.IsNotFound(err), "products are not materials")

	_, err = bom.Upsert(ctx, appprod.UpsertBOMRequest{ProductID: p.shirt.ID, Lines: []appprod.BOMLineRequest{{MaterialID: p.fabric.ID, QuantityPerUnit: d("0")}}})
	assert.True(t, shared.IsValidation(err))
}
