package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	appcatalog "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/catalog"
	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	apppartner "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/partner"
	appprod "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/production"
	apptrade "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/cache"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/event"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/storage"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/handler"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/middleware"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// stack wires the real services over a test database, as cmd/server does
type stack struct {
	db    *TestDB
	actor uuid.UUID

	partners     *apppartner.PartnerService
	items        *appcatalog.ItemService
	orders       *apptrade.OrderService
	debts        *appfinance.DebtService
	banks        *appfinance.BankAccountService
	settlements  *appfinance.SettlementService
	warehouses   *appinv.WarehouseService
	balances     *appinv.BalanceService
	transactions *appinv.TransactionService
	boms         *appprod.BOMService
	production   *appprod.ProductionService

	archive *storage.MemoryReceiptArchive
	bus     *event.InMemoryEventBus
	engine  *gin.Engine
}

func newStack(t *testing.T) *stack {
	t.Helper()
	tdb := NewTestDB(t)
	log := zap.NewNop()

	partnerRepo := persistence.NewGormPartnerRepository(tdb.DB)
	itemRepo := persistence.NewGormItemRepository(tdb.DB)
	orderRepo := persistence.NewGormOrderRepository(tdb.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(tdb.DB)
	balanceRepo := persistence.NewGormBalanceRepository(tdb.DB)
	bomRepo := persistence.NewGormBOMRepository(tdb.DB)
	txRepo := persistence.NewGormInventoryTransactionRepository(tdb.DB)
	scope := persistence.NewGormTransactionScope(tdb.DB)
	balanceCache := cache.NewInMemoryBalanceCache(time.Minute)

	s := &stack{
		db:           tdb,
		actor:        uuid.New(),
		partners:     apppartner.NewPartnerService(partnerRepo),
		items:        appcatalog.NewItemService(itemRepo),
		orders:       apptrade.NewOrderService(scope.Finance(), orderRepo, itemRepo, log),
		debts:        appfinance.NewDebtService(persistence.NewGormDebtRecordRepository(tdb.DB), persistence.NewGormDebtPaymentRepository(tdb.DB), partnerRepo, orderRepo),
		banks:        appfinance.NewBankAccountService(persistence.NewGormBankAccountRepository(tdb.DB)),
		settlements:  appfinance.NewSettlementService(scope.Finance(), log),
		warehouses:   appinv.NewWarehouseService(warehouseRepo),
		balances:     appinv.NewBalanceService(warehouseRepo, balanceRepo, balanceCache, log),
		transactions: appinv.NewTransactionService(scope.Inventory(), txRepo, log),
		boms:         appprod.NewBOMService(scope.Production(), bomRepo),
		production:   appprod.NewProductionService(scope.Production(), persistence.NewGormProductionOrderRepository(tdb.DB), bomRepo, balanceRepo, log),
		archive:      storage.NewMemoryReceiptArchive("receipts"),
		bus:          event.NewInMemoryEventBus(log),
	}

	s.bus.Subscribe(appinv.NewBalanceCacheInvalidationHandler(balanceCache, log))
	s.bus.SubscribeAsync(appfinance.NewReceiptArchiveHandler(s.archive, log))
	s.settlements.SetEventPublisher(s.bus)
	s.transactions.SetEventPublisher(s.bus)
	s.production.SetEventPublisher(s.bus)
	t.Cleanup(func() {
		_ = s.bus.Stop(context.Background())
	})

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Actor())
	router.NewRouter(engine).Register(router.APIGroups(router.Handlers{
		Finance:    handler.NewFinanceHandler(s.settlements, s.debts, s.banks),
		Inventory:  handler.NewInventoryHandler(s.transactions, s.warehouses, s.balances),
		Partner:    handler.NewPartnerHandler(s.partners),
		Catalog:    handler.NewCatalogHandler(s.items),
		Order:      handler.NewOrderHandler(s.orders),
		Production: handler.NewProductionHandler(s.production, s.boms),
	})...).Setup()
	s.engine = engine
	return s
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *stack) customer(t *testing.T, code string) uuid.UUID {
	t.Helper()
	p, err := s.partners.Create(context.Background(), apppartner.CreatePartnerRequest{
		BranchID: uuid.New(),
		Type:     "customer",
		Code:     code,
		Name:     "Khách hàng " + code,
	})
	require.NoError(t, err)
	return p.ID
}

func (s *stack) material(t *testing.T, code string) uuid.UUID {
	t.Helper()
	m, err := s.items.CreateMaterial(context.Background(), appcatalog.CreateItemRequest{Code: code, Name: "Vải " + code, Unit: "m"})
	require.NoError(t, err)
	return m.ID
}

func (s *stack) product(t *testing.T, code string) uuid.UUID {
	t.Helper()
	p, err := s.items.CreateProduct(context.Background(), appcatalog.CreateItemRequest{Code: code, Name: "Áo " + code, Unit: "cái"})
	require.NoError(t, err)
	return p.ID
}

func (s *stack) warehouse(t *testing.T, code, typ string) uuid.UUID {
	t.Helper()
	w, err := s.warehouses.Create(context.Background(), appinv.CreateWarehouseRequest{
		BranchID: uuid.New(),
		Code:     code,
		Name:     "Kho " + code,
		Type:     typ,
	})
	require.NoError(t, err)
	return w.ID
}

func (s *stack) salesOrder(t *testing.T, partnerID, productID uuid.UUID, qty, price string) *apptrade.OrderResponse {
	t.Helper()
	o, err := s.orders.Create(context.Background(), apptrade.CreateOrderRequest{
		Kind:      "SALES",
		PartnerID: partnerID,
		Lines:     []apptrade.OrderLineRequest{{ProductID: &productID, Quantity: dec(qty), UnitPrice: dec(price)}},
	}, s.actor)
	require.NoError(t, err)
	return o
}

// stockIn receives qty of a material and approves it
func (s *stack) stockIn(t *testing.T, warehouseID, materialID uuid.UUID, qty string) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.transactions.Create(ctx, appinv.CreateTransactionRequest{
		Type:          "NHAP",
		ToWarehouseID: &warehouseID,
		Items:         []appinv.TransactionItemRequest{{MaterialID: &materialID, Quantity: dec(qty)}},
	}, s.actor)
	require.NoError(t, err)
	_, err = s.transactions.Approve(ctx, tx.ID, s.actor)
	require.NoError(t, err)
}

func (s *stack) quantity(t *testing.T, warehouseID, materialID uuid.UUID) decimal.Decimal {
	t.Helper()
	snap, err := s.balances.WarehouseBalance(context.Background(), warehouseID)
	require.NoError(t, err)
	for _, b := range snap.Items {
		if b.MaterialID != nil && *b.MaterialID == materialID {
			return b.Quantity
		}
		if b.ProductID != nil && *b.ProductID == materialID {
			return b.Quantity
		}
	}
	return decimal.Zero
}

// request sends a JSON request through the API router
func (s *stack) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, s.actor.String())
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.NotNil(t, env.Error, w.Body.String())
	return env.Error.Code
}
