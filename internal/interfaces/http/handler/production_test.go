package handler

import (
	"context"
	"net/http"
	"testing"

	appprod "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProduction struct{ mock.Mock }

func (m *mockProduction) Create(ctx context.Context, req appprod.CreateProductionOrderRequest, actorID uuid.UUID) (*appprod.ProductionOrderResponse, error) {
	args := m.Called(ctx, req, actorID)
	res, _ := args.Get(0).(*appprod.ProductionOrderResponse)
	return res, args.Error(1)
}

func (m *mockProduction) GetByID(ctx context.Context, id uuid.UUID) (*appprod.ProductionOrderResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*appprod.ProductionOrderResponse)
	return res, args.Error(1)
}

func (m *mockProduction) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[appprod.ProductionOrderResponse], error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).(*shared.Paginated[appprod.ProductionOrderResponse])
	return res, args.Error(1)
}

func (m *mockProduction) MaterialRequirements(ctx context.Context, id uuid.UUID) (*appprod.MaterialRequirementsResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*appprod.MaterialRequirementsResponse)
	return res, args.Error(1)
}

func (m *mockProduction) RecordMaterialImport(ctx context.Context, id, actorID uuid.UUID) (*appprod.ProductionOrderResponse, error) {
	args := m.Called(ctx, id, actorID)
	res, _ := args.Get(0).(*appprod.ProductionOrderResponse)
	return res, args.Error(1)
}

func (m *mockProduction) AdvanceStep(ctx context.Context, id uuid.UUID, req appprod.AdvanceStepRequest, actorID uuid.UUID) (*appprod.ProductionOrderResponse, error) {
	args := m.Called(ctx, id, req, actorID)
	res, _ := args.Get(0).(*appprod.ProductionOrderResponse)
	return res, args.Error(1)
}

func (m *mockProduction) RecordFinishedGoodsReceipt(ctx context.Context, id, actorID uuid.UUID) (*appprod.ProductionOrderResponse, error) {
	args := m.Called(ctx, id, actorID)
	res, _ := args.Get(0).(*appprod.ProductionOrderResponse)
	return res, args.Error(1)
}

type mockBOMs struct{ mock.Mock }

func (m *mockBOMs) Upsert(ctx context.Context, req appprod.UpsertBOMRequest) ([]appprod.BOMLineResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).([]appprod.BOMLineResponse)
	return res, args.Error(1)
}

func (m *mockBOMs) ForProduct(ctx context.Context, productID uuid.UUID) ([]appprod.BOMLineResponse, error) {
	args := m.Called(ctx, productID)
	res, _ := args.Get(0).([]appprod.BOMLineResponse)
	return res, args.Error(1)
}

func newProductionRouter() (*gin.Engine, *mockProduction, *mockBOMs) {
	orders, boms := &mockProduction{}, &mockBOMs{}
	h := NewProductionHandler(orders, boms)
	r := newTestRouter()
	r.POST("/production-orders", h.Create)
	r.GET("/production-orders", h.List)
	r.GET("/production-orders/:id", h.GetByID)
	r.GET("/production-orders/:id/material-requirements", h.MaterialRequirements)
	r.POST("/production-orders/:id/material-import", h.RecordMaterialImport)
	r.POST("/production-orders/:id/advance", h.AdvanceStep)
	r.POST("/production-orders/:id/finished-goods-receipt", h.RecordFinishedGoodsReceipt)
	r.POST("/bom", h.UpsertBOM)
	r.GET("/products/:id/bom", h.ProductBOM)
	return r, orders, boms
}

func TestAdvanceStep(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()

	t.Run("advances to the next step", func(t *testing.T) {
		r, orders, _ := newProductionRouter()
		orders.On("AdvanceStep", mock.Anything, id, appprod.AdvanceStepRequest{NextStep: "CUTTING"}, actor).
			Return(&appprod.ProductionOrderResponse{ID: id, CurrentStep: "CUTTING", Status: "IN_PROGRESS"}, nil)

		w, resp := do(t, r, call{method: http.MethodPost, path: "/production-orders/" + id.String() + "/advance", actor: &actor,
			body: map[string]string{"next_step": "CUTTING"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got appprod.ProductionOrderResponse
		decodeData(t, resp, &got)
		assert.Equal(t, "CUTTING", got.CurrentStep)
	})

	t.Run("skipping a step conflicts", func(t *testing.T) {
		r, orders, _ := newProductionRouter()
		orders.On("AdvanceStep", mock.Anything, id, mock.Anything, actor).Return(nil, shared.ErrInvalidStateTransition)

		w, _ := do(t, r, call{method: http.MethodPost, path: "/production-orders/" + id.String() + "/advance", actor: &actor,
			body: map[string]string{"next_step": "QC"}})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("next_step is required", func(t *testing.T) {
		r, orders, _ := newProductionRouter()
		w, resp := do(t, r, call{method: http.MethodPost, path: "/production-orders/" + id.String() + "/advance", actor: &actor,
			body: map[string]string{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "next_step", resp.Error.Fields[0].Field)
		orders.AssertNotCalled(t, "AdvanceStep", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLinkedTransactions(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()
	issueTx := uuid.New()
	receiptTx := uuid.New()

	r, orders, _ := newProductionRouter()
	orders.On("RecordMaterialImport", mock.Anything, id, actor).
		Return(&appprod.ProductionOrderResponse{ID: id, MaterialIssueTxID: &issueTx}, nil)
	orders.On("RecordFinishedGoodsReceipt", mock.Anything, id, actor).
		Return(&appprod.ProductionOrderResponse{ID: id, FinishedGoodsTxID: &receiptTx, Status: "COMPLETED"}, nil)

	w, resp := do(t, r, call{method: http.MethodPost, path: "/production-orders/" + id.String() + "/material-import", actor: &actor})
	require.Equal(t, http.StatusOK, w.Code)
	var got appprod.ProductionOrderResponse
	decodeData(t, resp, &got)
	assert.Equal(t, &issueTx, got.MaterialIssueTxID)

	w, resp = do(t, r, call{method: http.MethodPost, path: "/production-orders/" + id.String() + "/finished-goods-receipt", actor: &actor})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, resp, &got)
	assert.Equal(t, "COMPLETED", got.Status)

	w, _ = do(t, r, call{method: http.MethodPost, path: "/production-orders/" + id.String() + "/material-import"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	orders.AssertNumberOfCalls(t, "RecordMaterialImport", 1)
}

func TestBOMEndpoints(t *testing.T) {
	r, _, boms := newProductionRouter()
	product := uuid.New()
	material := uuid.New()

	boms.On("Upsert", mock.Anything, mock.MatchedBy(func(req appprod.UpsertBOMRequest) bool {
		return req.ProductID == product && len(req.Lines) == 1 && req.Lines[0].QuantityPerUnit.Equal(decimal.RequireFromString("1.5"))
	})).Return([]appprod.BOMLineResponse{{ID: uuid.New(), ProductID: product, MaterialID: material}}, nil)
	boms.On("ForProduct", mock.Anything, product).Return(nil, nil)

	w, _ := do(t, r, call{method: http.MethodPost, path: "/bom", body: map[string]any{
		"product_id": product,
		"lines":      []map[string]any{{"material_id": material, "quantity_per_unit": "1.5"}},
	}})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = do(t, r, call{method: http.MethodGet, path: "/products/" + product.String() + "/bom"})
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
	boms.AssertExpectations(t)
}
