package trade

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one line of a new order; exactly one of MaterialID and ProductID is set
type OrderLineRequest struct {
	MaterialID *uuid.UUID      `json:"material_id"`
	ProductID  *uuid.UUID      `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required,decimal_positive"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest creates a sales order for a customer or a purchase order for a supplier
type CreateOrderRequest struct {
	Kind           string             `json:"kind" binding:"required,oneof=SALES PURCHASE"`
	PartnerID      uuid.UUID          `json:"partner_id" binding:"required"`
	Lines          []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Notes          string             `json:"notes" binding:"max=500"`
}

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	Kind      string     `form:"kind" binding:"omitempty,oneof=SALES PURCHASE"`
	PartnerID *uuid.UUID `form:"partner_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID         uuid.UUID       `json:"id"`
	MaterialID *uuid.UUID      `json:"material_id,omitempty"`
	ProductID  *uuid.UUID      `json:"product_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Amount     decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	Kind           string              `json:"kind"`
	Code           string              `json:"code"`
	PartnerID      uuid.UUID           `json:"partner_id"`
	OrderDate      time.Time           `json:"order_date"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	FinalAmount    decimal.Decimal     `json:"final_amount"`
	PaidAmount     decimal.Decimal     `json:"paid_amount"`
	Remaining      decimal.Decimal     `json:"remaining"`
	PaymentStatus  string              `json:"payment_status"`
	Status         string              `json:"status"`
	Notes          string              `json:"notes,omitempty"`
	Lines          []OrderLineResponse `json:"lines"`
	CreatedBy      uuid.UUID           `json:"created_by"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ToOrderResponse converts an order to its response
func ToOrderResponse(o *trade.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ID:         l.ID,
			MaterialID: l.Item.MaterialID,
			ProductID:  l.Item.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Amount:     l.Amount(),
		})
	}
	return OrderResponse{
		ID:             o.ID,
		Kind:           string(o.Kind),
		Code:           o.Code,
		PartnerID:      o.PartnerID,
		OrderDate:      o.OrderDate,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		FinalAmount:    o.FinalAmount,
		PaidAmount:     o.PaidAmount,
		Remaining:      o.Remaining(),
		PaymentStatus:  string(o.PaymentStatus),
		Status:         string(o.Status),
		Notes:          o.Notes,
		Lines:          lines,
		CreatedBy:      o.CreatedBy,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
