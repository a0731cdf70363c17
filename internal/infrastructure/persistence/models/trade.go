package models

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for sales and purchase orders.
type OrderModel struct {
	AggregateModel
	Kind           trade.OrderKind     `gorm:"type:varchar(20);not null;index:idx_order_partner_open,priority:2"`
	Code           string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	PartnerID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_order_partner_open,priority:1"`
	OrderDate      time.Time           `gorm:"not null"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	FinalAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentStatus  trade.PaymentStatus `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	Status         trade.OrderStatus   `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Notes          string              `gorm:"type:text"`
	CreatedBy      uuid.UUID           `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the header to a domain Order; lines are attached by the repository.
func (m *OrderModel) ToDomain(items []OrderItemModel) *trade.Order {
	o := &trade.Order{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Kind:              m.Kind,
		Code:              m.Code,
		PartnerID:         m.PartnerID,
		OrderDate:         m.OrderDate,
		TotalAmount:       m.TotalAmount,
		DiscountAmount:    m.DiscountAmount,
		FinalAmount:       m.FinalAmount,
		PaidAmount:        m.PaidAmount,
		PaymentStatus:     m.PaymentStatus,
		Status:            m.Status,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
	}
	o.Lines = make([]trade.OrderLine, len(items))
	for i := range items {
		o.Lines[i] = items[i].ToDomain()
	}
	return o
}

// FromDomain populates the header from a domain Order.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Kind = o.Kind
	m.Code = o.Code
	m.PartnerID = o.PartnerID
	m.OrderDate = o.OrderDate
	m.TotalAmount = o.TotalAmount
	m.DiscountAmount = o.DiscountAmount
	m.FinalAmount = o.FinalAmount
	m.PaidAmount = o.PaidAmount
	m.PaymentStatus = o.PaymentStatus
	m.Status = o.Status
	m.Notes = o.Notes
	m.CreatedBy = o.CreatedBy
}

// OrderModelFromDomain creates a header model from a domain Order.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is one order line.
type OrderItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo     int             `gorm:"not null"`
	MaterialID *uuid.UUID      `gorm:"type:uuid"`
	ProductID  *uuid.UUID      `gorm:"type:uuid"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the line model to a domain OrderLine.
func (m *OrderItemModel) ToDomain() trade.OrderLine {
	return trade.OrderLine{
		ID:        m.ID,
		Item:      catalog.ItemRef{MaterialID: m.MaterialID, ProductID: m.ProductID},
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
	}
}

// OrderItemModelsFromDomain creates line models in line order.
func OrderItemModelsFromDomain(o *trade.Order) []OrderItemModel {
	out := make([]OrderItemModel, len(o.Lines))
	for i, l := range o.Lines {
		out[i] = OrderItemModel{
			ID:         l.ID,
			OrderID:    o.ID,
			LineNo:     i + 1,
			MaterialID: l.Item.MaterialID,
			ProductID:  l.Item.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		}
	}
	return out
}
