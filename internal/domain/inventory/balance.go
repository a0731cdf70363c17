package inventory

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryBalance is the current quantity of one item in one warehouse.
// It is the only source of truth for stock on hand and is never negative.
type InventoryBalance struct {
	ID          uuid.UUID
	WarehouseID uuid.UUID
	Item        catalog.ItemRef
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// NewInventoryBalance creates a zero balance row for (warehouse, item)
func NewInventoryBalance(warehouseID uuid.UUID, item catalog.ItemRef) *InventoryBalance {
	return &InventoryBalance{
		ID:          uuid.New(),
		WarehouseID: warehouseID,
		Item:        item,
		Quantity:    decimal.Zero,
		UpdatedAt:   time.Now(),
	}
}

// Increase adds stock
func (b *InventoryBalance) Increase(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewValidationError("INVALID_QUANTITY", "quantity must be positive")
	}
	b.Quantity = b.Quantity.Add(qty)
	b.UpdatedAt = time.Now()
	return nil
}

// Decrease removes stock and refuses to go below zero
func (b *InventoryBalance) Decrease(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewValidationError("INVALID_QUANTITY", "quantity must be positive")
	}
	if b.Quantity.LessThan(qty) {
		return shared.ErrInsufficientStock.
			WithDetail("warehouse_id", b.WarehouseID.String()).
			WithDetail("item", b.Item.Key().String()).
			WithDetail("requested", qty.String()).
			WithDetail("available", b.Quantity.String())
	}
	b.Quantity = b.Quantity.Sub(qty)
	b.UpdatedAt = time.Now()
	return nil
}

// Apply applies a signed delta
func (b *InventoryBalance) Apply(delta decimal.Decimal) error {
	if delta.IsNegative() {
		return b.Decrease(delta.Neg())
	}
	return b.Increase(delta)
}
