package handler

import (
	"context"
	"errors"
	"io"

	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryTransactions drives the inventory transaction workflow
type InventoryTransactions interface {
	Create(ctx context.Context, req appinv.CreateTransactionRequest, actorID uuid.UUID) (*appinv.TransactionResponse, error)
	Approve(ctx context.Context, id, actorID uuid.UUID) (*appinv.TransactionResponse, error)
	Reject(ctx context.Context, id, actorID uuid.UUID, reason string) (*appinv.TransactionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*appinv.TransactionResponse, error)
	List(ctx context.Context, filter appinv.TransactionListFilter) (*shared.Paginated[appinv.TransactionResponse], error)
}

// Warehouses manages warehouses
type Warehouses interface {
	Create(ctx context.Context, req appinv.CreateWarehouseRequest) (*appinv.WarehouseResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*appinv.WarehouseResponse, error)
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[appinv.WarehouseResponse], error)
}

// Balances serves warehouse balance snapshots
type Balances interface {
	WarehouseBalance(ctx context.Context, warehouseID uuid.UUID) (*appinv.WarehouseBalanceResponse, error)
}

// InventoryHandler serves inventory transactions, warehouses and balances
type InventoryHandler struct {
	BaseHandler
	transactions InventoryTransactions
	warehouses   Warehouses
	balances     Balances
}

// NewInventoryHandler creates an InventoryHandler
func NewInventoryHandler(transactions InventoryTransactions, warehouses Warehouses, balances Balances) *InventoryHandler {
	return &InventoryHandler{transactions: transactions, warehouses: warehouses, balances: balances}
}

// CreateTransaction godoc
// @ID           createInventoryTransaction
// @Summary      Create an inventory transaction
// @Description  Creates a PENDING NHAP, XUAT or CHUYEN transaction. Issues are checked against committed balances.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        request body appinv.CreateTransactionRequest true "Transaction"
// @Success      201 {object} APIResponse[appinv.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /inventory/transactions [post]
func (h *InventoryHandler) CreateTransaction(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req appinv.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	tx, err := h.transactions.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, tx)
}

// ApproveTransaction godoc
// @ID           approveInventoryTransaction
// @Summary      Approve a pending inventory transaction
// @Description  Re-checks stock under row locks and applies the balance changes atomically
// @Tags         inventory
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /inventory/transactions/{id}/approve [post]
func (h *InventoryHandler) ApproveTransaction(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	tx, err := h.transactions.Approve(c.Request.Context(), id, actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tx)
}

// RejectTransaction godoc
// @ID           rejectInventoryTransaction
// @Summary      Reject a pending inventory transaction
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        id path string true "Transaction ID" format(uuid)
// @Param        request body appinv.RejectTransactionRequest false "Reason"
// @Success      200 {object} APIResponse[appinv.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /inventory/transactions/{id}/reject [post]
func (h *InventoryHandler) RejectTransaction(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req appinv.RejectTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindError(c, err)
		return
	}
	tx, err := h.transactions.Reject(c.Request.Context(), id, actor, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tx)
}

// GetTransaction godoc
// @ID           getInventoryTransaction
// @Summary      Get an inventory transaction with its lines
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /inventory/transactions/{id} [get]
func (h *InventoryHandler) GetTransaction(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	tx, err := h.transactions.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tx)
}

// ListTransactions godoc
// @ID           listInventoryTransactions
// @Summary      List inventory transactions
// @Tags         inventory
// @Produce      json
// @Param        type query string false "NHAP, XUAT or CHUYEN"
// @Param        status query string false "PENDING, APPROVED or REJECTED"
// @Param        warehouse_id query string false "Source or destination warehouse" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appinv.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var q struct {
		Type     string `form:"type" binding:"omitempty,oneof=NHAP XUAT CHUYEN"`
		Status   string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
		Page     int    `form:"page" binding:"omitempty,min=1"`
		PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	warehouseID, ok := h.QueryID(c, "warehouse_id")
	if !ok {
		return
	}
	result, err := h.transactions.List(c.Request.Context(), appinv.TransactionListFilter{
		Type:        q.Type,
		Status:      q.Status,
		WarehouseID: warehouseID,
		Page:        q.Page,
		PageSize:    q.PageSize,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	page(c, result)
}

// WarehouseBalance godoc
// @ID           getWarehouseBalance
// @Summary      Get the per-item quantity snapshot of a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.WarehouseBalanceResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /warehouses/{id}/balances [get]
func (h *InventoryHandler) WarehouseBalance(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	snapshot, err := h.balances.WarehouseBalance(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, snapshot)
}

// CreateWarehouse godoc
// @ID           createWarehouse
// @Summary      Create a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        request body appinv.CreateWarehouseRequest true "Warehouse"
// @Success      201 {object} APIResponse[appinv.WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /warehouses [post]
func (h *InventoryHandler) CreateWarehouse(c *gin.Context) {
	var req appinv.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	w, err := h.warehouses.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, w)
}

// GetWarehouse godoc
// @ID           getWarehouse
// @Summary      Get a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.WarehouseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /warehouses/{id} [get]
func (h *InventoryHandler) GetWarehouse(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	w, err := h.warehouses.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, w)
}

// ListWarehouses godoc
// @ID           listWarehouses
// @Summary      List warehouses
// @Tags         warehouses
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appinv.WarehouseResponse]
// @Router       /warehouses [get]
func (h *InventoryHandler) ListWarehouses(c *gin.Context) {
	filter, ok := h.ListQuery(c)
	if !ok {
		return
	}
	result, err := h.warehouses.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	page(c, result)
}
