package handler

import (
	"context"

	appprod "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductionOrders drives production orders through their steps
type ProductionOrders interface {
	Create(ctx context.Context, req appprod.CreateProductionOrderRequest, actorID uuid.UUID) (*appprod.ProductionOrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*appprod.ProductionOrderResponse, error)
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[appprod.ProductionOrderResponse], error)
	MaterialRequirements(ctx context.Context, id uuid.UUID) (*appprod.MaterialRequirementsResponse, error)
	RecordMaterialImport(ctx context.Context, id, actorID uuid.UUID) (*appprod.ProductionOrderResponse, error)
	AdvanceStep(ctx context.Context, id uuid.UUID, req appprod.AdvanceStepRequest, actorID uuid.UUID) (*appprod.ProductionOrderResponse, error)
	RecordFinishedGoodsReceipt(ctx context.Context, id, actorID uuid.UUID) (*appprod.ProductionOrderResponse, error)
}

// BillsOfMaterials manages per-product material quantities
type BillsOfMaterials interface {
	Upsert(ctx context.Context, req appprod.UpsertBOMRequest) ([]appprod.BOMLineResponse, error)
	ForProduct(ctx context.Context, productID uuid.UUID) ([]appprod.BOMLineResponse, error)
}

// ProductionHandler serves production orders and bills of materials
type ProductionHandler struct {
	BaseHandler
	orders ProductionOrders
	boms   BillsOfMaterials
}

// NewProductionHandler creates a ProductionHandler
func NewProductionHandler(orders ProductionOrders, boms BillsOfMaterials) *ProductionHandler {
	return &ProductionHandler{orders: orders, boms: boms}
}

// Create godoc
// @ID           createProductionOrder
// @Summary      Create a production order from a sales order
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        request body appprod.CreateProductionOrderRequest true "Production order"
// @Success      201 {object} APIResponse[appprod.ProductionOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /production-orders [post]
func (h *ProductionHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req appprod.CreateProductionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.orders.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p)
}

// GetByID godoc
// @ID           getProductionOrder
// @Summary      Get a production order with lines and step history
// @Tags         production
// @Produce      json
// @Param        id path string true "Production order ID" format(uuid)
// @Success      200 {object} APIResponse[appprod.ProductionOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /production-orders/{id} [get]
func (h *ProductionHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	p, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, p)
}

// List godoc
// @ID           listProductionOrders
// @Summary      List production orders
// @Tags         production
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appprod.ProductionOrderResponse]
// @Router       /production-orders [get]
func (h *ProductionHandler) List(c *gin.Context) {
	filter, ok := h.ListQuery(c)
	if !ok {
		return
	}
	result, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	page(c, result)
}

// MaterialRequirements godoc
// @ID           getProductionMaterialRequirements
// @Summary      Compute the materials a production order needs
// @Description  BOM quantity per unit times ordered quantity, compared with the material warehouse stock
// @Tags         production
// @Produce      json
// @Param        id path string true "Production order ID" format(uuid)
// @Success      200 {object} APIResponse[appprod.MaterialRequirementsResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /production-orders/{id}/material-requirements [get]
func (h *ProductionHandler) MaterialRequirements(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	req, err := h.orders.MaterialRequirements(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, req)
}

// RecordMaterialImport godoc
// @ID           recordProductionMaterialImport
// @Summary      Issue the order's materials from the material warehouse
// @Description  Creates a pending XUAT transaction linked to the production order
// @Tags         production
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        id path string true "Production order ID" format(uuid)
// @Success      200 {object} APIResponse[appprod.ProductionOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /production-orders/{id}/material-import [post]
func (h *ProductionHandler) RecordMaterialImport(c *gin.Context) {
	h.step(c, h.orders.RecordMaterialImport)
}

// RecordFinishedGoodsReceipt godoc
// @ID           recordProductionFinishedGoods
// @Summary      Receive finished goods into the product warehouse
// @Description  Creates a pending NHAP transaction and completes the production order
// @Tags         production
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        id path string true "Production order ID" format(uuid)
// @Success      200 {object} APIResponse[appprod.ProductionOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /production-orders/{id}/finished-goods-receipt [post]
func (h *ProductionHandler) RecordFinishedGoodsReceipt(c *gin.Context) {
	h.step(c, h.orders.RecordFinishedGoodsReceipt)
}

func (h *ProductionHandler) step(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID) (*appprod.ProductionOrderResponse, error)) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	p, err := fn(c.Request.Context(), id, actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, p)
}

// AdvanceStep godoc
// @ID           advanceProductionStep
// @Summary      Move a production order to its next step
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        id path string true "Production order ID" format(uuid)
// @Param        request body appprod.AdvanceStepRequest true "Next step"
// @Success      200 {object} APIResponse[appprod.ProductionOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /production-orders/{id}/advance [post]
func (h *ProductionHandler) AdvanceStep(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req appprod.AdvanceStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.orders.AdvanceStep(c.Request.Context(), id, req, actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, p)
}

// UpsertBOM godoc
// @ID           upsertBOM
// @Summary      Set the bill of materials of a product
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        request body appprod.UpsertBOMRequest true "BOM"
// @Success      200 {object} APIResponse[[]appprod.BOMLineResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /bom [post]
func (h *ProductionHandler) UpsertBOM(c *gin.Context) {
	var req appprod.UpsertBOMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	lines, err := h.boms.Upsert(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, lines)
}

// ProductBOM godoc
// @ID           getProductBOM
// @Summary      Get the bill of materials of a product
// @Tags         production
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[[]appprod.BOMLineResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/bom [get]
func (h *ProductionHandler) ProductBOM(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	lines, err := h.boms.ForProduct(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	if lines == nil {
		lines = []appprod.BOMLineResponse{}
	}
	h.Success(c, lines)
}
