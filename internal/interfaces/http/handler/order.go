package handler

import (
	"context"

	apptrade "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Orders manages sales and purchase orders
type Orders interface {
	Create(ctx context.Context, req apptrade.CreateOrderRequest, actorID uuid.UUID) (*apptrade.OrderResponse, error)
	Confirm(ctx context.Context, id uuid.UUID) (*apptrade.OrderResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*apptrade.OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*apptrade.OrderResponse, error)
	List(ctx context.Context, filter apptrade.OrderListFilter) (*shared.Paginated[apptrade.OrderResponse], error)
}

// OrderHandler serves sales and purchase orders
type OrderHandler struct {
	BaseHandler
	orders Orders
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(orders Orders) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create godoc
// @ID           createOrder
// @Summary      Create a sales or purchase order
// @Description  Computes total, discount and final amount and raises the partner's debt by the final amount
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        request body apptrade.CreateOrderRequest true "Order"
// @Success      201 {object} APIResponse[apptrade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req apptrade.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	o, err := h.orders.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, o)
}

// Confirm godoc
// @ID           confirmOrder
// @Summary      Confirm a pending order
// @Tags         orders
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[apptrade.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *gin.Context) {
	h.transition(c, h.orders.Confirm)
}

// Cancel godoc
// @ID           cancelOrder
// @Summary      Cancel an order without payments
// @Description  Lowers the partner's debt by the order's final amount, floored at zero
// @Tags         orders
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[apptrade.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orders.Cancel)
}

func (h *OrderHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*apptrade.OrderResponse, error)) {
	if _, ok := h.Actor(c); !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	o, err := fn(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, o)
}

// GetByID godoc
// @ID           getOrder
// @Summary      Get an order with its lines
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[apptrade.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, o)
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        kind query string false "SALES or PURCHASE"
// @Param        partner_id query string false "Partner" format(uuid)
// @Param        status query string false "PENDING, CONFIRMED, COMPLETED or CANCELLED"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]apptrade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q struct {
		Kind     string `form:"kind" binding:"omitempty,oneof=SALES PURCHASE"`
		Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
		Page     int    `form:"page" binding:"omitempty,min=1"`
		PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	partnerID, ok := h.QueryID(c, "partner_id")
	if !ok {
		return
	}
	result, err := h.orders.List(c.Request.Context(), apptrade.OrderListFilter{
		Kind:      q.Kind,
		PartnerID: partnerID,
		Status:    q.Status,
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	page(c, result)
}
