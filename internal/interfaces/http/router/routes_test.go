package router

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/handler"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/middleware"
)

func newAPIEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Actor())
	h := Handlers{
		Finance:    handler.NewFinanceHandler(nil, nil, nil),
		Inventory:  handler.NewInventoryHandler(nil, nil, nil),
		Partner:    handler.NewPartnerHandler(nil),
		Catalog:    handler.NewCatalogHandler(nil),
		Order:      handler.NewOrderHandler(nil),
		Production: handler.NewProductionHandler(nil, nil),
	}
	NewRouter(engine).Register(APIGroups(h)...).Setup()
	return engine
}

func TestAPIGroupsRouteTable(t *testing.T) {
	engine := newAPIEngine()

	var got []string
	for _, r := range engine.Routes() {
		got = append(got, r.Method+" "+r.Path)
	}
	sort.Strings(got)

	want := []string{
		"GET /api/v1/bank-accounts",
		"GET /api/v1/bank-accounts/:id",
		"GET /api/v1/debts",
		"GET /api/v1/debts/:id/payments",
		"GET /api/v1/inventory/transactions",
		"GET /api/v1/inventory/transactions/:id",
		"GET /api/v1/materials",
		"GET /api/v1/materials/:id",
		"GET /api/v1/orders",
		"GET /api/v1/orders/:id",
		"GET /api/v1/partners",
		"GET /api/v1/partners/:id",
		"GET /api/v1/partners/:id/debt-summary",
		"GET /api/v1/production-orders",
		"GET /api/v1/production-orders/:id",
		"GET /api/v1/production-orders/:id/material-requirements",
		"GET /api/v1/products",
		"GET /api/v1/products/:id",
		"GET /api/v1/products/:id/bom",
		"GET /api/v1/warehouses",
		"GET /api/v1/warehouses/:id",
		"GET /api/v1/warehouses/:id/balances",
		"POST /api/v1/bank-accounts",
		"POST /api/v1/bom",
		"POST /api/v1/inventory/transactions",
		"POST /api/v1/inventory/transactions/:id/approve",
		"POST /api/v1/inventory/transactions/:id/reject",
		"POST /api/v1/materials",
		"POST /api/v1/orders",
		"POST /api/v1/orders/:id/cancel",
		"POST /api/v1/orders/:id/confirm",
		"POST /api/v1/partners",
		"POST /api/v1/production-orders",
		"POST /api/v1/production-orders/:id/advance",
		"POST /api/v1/production-orders/:id/finished-goods-receipt",
		"POST /api/v1/production-orders/:id/material-import",
		"POST /api/v1/products",
		"POST /api/v1/settlements",
		"POST /api/v1/warehouses",
	}
	assert.Equal(t, want, got)
}

func TestAPIGroupsRequireActor(t *testing.T) {
	engine := newAPIEngine()
	id := uuid.NewString()

	guarded := []string{
		"/api/v1/settlements",
		"/api/v1/inventory/transactions",
		"/api/v1/inventory/transactions/" + id + "/approve",
		"/api/v1/inventory/transactions/" + id + "/reject",
		"/api/v1/orders",
		"/api/v1/orders/" + id + "/confirm",
		"/api/v1/orders/" + id + "/cancel",
		"/api/v1/production-orders",
		"/api/v1/production-orders/" + id + "/material-import",
		"/api/v1/production-orders/" + id + "/advance",
		"/api/v1/production-orders/" + id + "/finished-goods-receipt",
	}

	for _, path := range guarded {
		t.Run(path, func(t *testing.T) {
			w := serve(engine, http.MethodPost, path)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestAPIGroupsActorPassesGuard(t *testing.T) {
	engine := newAPIEngine()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/settlements", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, uuid.NewString())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_JSON")
}

func TestAPIGroupsUnknownRoute(t *testing.T) {
	engine := newAPIEngine()

	w := serve(engine, http.MethodGet, "/api/v1/invoices")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
