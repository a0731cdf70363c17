package models

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseModel is the persistence model for warehouses.
type WarehouseModel struct {
	BranchAggregateModel
	Code     string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string                  `gorm:"type:varchar(200);not null"`
	Type     inventory.WarehouseType `gorm:"type:varchar(20);not null"`
	Address  string                  `gorm:"type:text"`
	IsActive bool                    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse.
func (m *WarehouseModel) ToDomain() *inventory.Warehouse {
	return &inventory.Warehouse{
		BaseAggregateRoot: m.ToAggregateRoot(),
		BranchScoped:      m.ToBranchScoped(),
		Code:              m.Code,
		Name:              m.Name,
		Type:              m.Type,
		Address:           m.Address,
		IsActive:          m.IsActive,
	}
}

// WarehouseModelFromDomain creates a persistence model from a domain Warehouse.
func WarehouseModelFromDomain(w *inventory.Warehouse) *WarehouseModel {
	m := &WarehouseModel{
		Code:     w.Code,
		Name:     w.Name,
		Type:     w.Type,
		Address:  w.Address,
		IsActive: w.IsActive,
	}
	m.FromDomainBranchAggregate(w.BaseAggregateRoot, w.BranchScoped)
	return m
}

// InventoryBalanceModel is the stock on hand of one item in one warehouse.
// (warehouse_id, material_id) and (warehouse_id, product_id) are unique through partial indexes.
type InventoryBalanceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_balance_wh_material,priority:1;uniqueIndex:idx_balance_wh_product,priority:1"`
	MaterialID  *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_balance_wh_material,priority:2,where:material_id IS NOT NULL"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_balance_wh_product,priority:2,where:product_id IS NOT NULL"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryBalanceModel) TableName() string {
	return "inventory_balances"
}

// ToDomain converts the persistence model to a domain InventoryBalance.
func (m *InventoryBalanceModel) ToDomain() *inventory.InventoryBalance {
	return &inventory.InventoryBalance{
		ID:          m.ID,
		WarehouseID: m.WarehouseID,
		Item:        catalog.ItemRef{MaterialID: m.MaterialID, ProductID: m.ProductID},
		Quantity:    m.Quantity,
		UpdatedAt:   m.UpdatedAt,
	}
}

// InventoryBalanceModelFromDomain creates a persistence model from a domain InventoryBalance.
func InventoryBalanceModelFromDomain(b *inventory.InventoryBalance) *InventoryBalanceModel {
	return &InventoryBalanceModel{
		ID:          b.ID,
		WarehouseID: b.WarehouseID,
		MaterialID:  b.Item.MaterialID,
		ProductID:   b.Item.ProductID,
		Quantity:    b.Quantity,
		UpdatedAt:   b.UpdatedAt,
	}
}

// InventoryTransactionModel is the header of a stock movement document.
type InventoryTransactionModel struct {
	AggregateModel
	Code              string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type              inventory.TransactionType   `gorm:"type:varchar(20);not null;index"`
	Status            inventory.TransactionStatus `gorm:"type:varchar(20);not null;index"`
	FromWarehouseID   *uuid.UUID                  `gorm:"type:uuid;index"`
	ToWarehouseID     *uuid.UUID                  `gorm:"type:uuid;index"`
	Notes             string                      `gorm:"type:text"`
	ProductionOrderID *uuid.UUID                  `gorm:"type:uuid;index"`
	CreatedBy         uuid.UUID                   `gorm:"type:uuid"`
	ApprovedBy        *uuid.UUID                  `gorm:"type:uuid"`
	ApprovedAt        *time.Time
	RejectedBy        *uuid.UUID `gorm:"type:uuid"`
	RejectedAt        *time.Time
	RejectReason      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// ToDomain converts the header and its details to a domain InventoryTransaction.
func (m *InventoryTransactionModel) ToDomain(details []InventoryTransactionDetailModel) *inventory.InventoryTransaction {
	tx := &inventory.InventoryTransaction{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Code:              m.Code,
		Type:              m.Type,
		Status:            m.Status,
		FromWarehouseID:   m.FromWarehouseID,
		ToWarehouseID:     m.ToWarehouseID,
		Notes:             m.Notes,
		ProductionOrderID: m.ProductionOrderID,
		CreatedBy:         m.CreatedBy,
		ApprovedBy:        m.ApprovedBy,
		ApprovedAt:        m.ApprovedAt,
		RejectedBy:        m.RejectedBy,
		RejectedAt:        m.RejectedAt,
		RejectReason:      m.RejectReason,
	}
	tx.Lines = make([]inventory.TransactionLine, len(details))
	for i := range details {
		tx.Lines[i] = details[i].ToDomain()
	}
	return tx
}

// InventoryTransactionModelFromDomain creates a header model from a domain InventoryTransaction.
func InventoryTransactionModelFromDomain(tx *inventory.InventoryTransaction) *InventoryTransactionModel {
	m := &InventoryTransactionModel{
		Code:              tx.Code,
		Type:              tx.Type,
		Status:            tx.Status,
		FromWarehouseID:   tx.FromWarehouseID,
		ToWarehouseID:     tx.ToWarehouseID,
		Notes:             tx.Notes,
		ProductionOrderID: tx.ProductionOrderID,
		CreatedBy:         tx.CreatedBy,
		ApprovedBy:        tx.ApprovedBy,
		ApprovedAt:        tx.ApprovedAt,
		RejectedBy:        tx.RejectedBy,
		RejectedAt:        tx.RejectedAt,
		RejectReason:      tx.RejectReason,
	}
	m.FromDomainAggregateRoot(tx.BaseAggregateRoot)
	return m
}

// InventoryTransactionDetailModel is one line of a stock movement document.
type InventoryTransactionDetailModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID           `gorm:"type:uuid;not null;index"`
	LineNo        int                 `gorm:"not null"`
	MaterialID    *uuid.UUID          `gorm:"type:uuid"`
	ProductID     *uuid.UUID          `gorm:"type:uuid"`
	Quantity      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.NullDecimal `gorm:"type:decimal(18,2)"`
}

// TableName returns the table name for GORM
func (InventoryTransactionDetailModel) TableName() string {
	return "inventory_transaction_details"
}

// ToDomain converts the detail model to a domain TransactionLine.
func (m *InventoryTransactionDetailModel) ToDomain() inventory.TransactionLine {
	return inventory.TransactionLine{
		ID:        m.ID,
		Item:      catalog.ItemRef{MaterialID: m.MaterialID, ProductID: m.ProductID},
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
	}
}

// InventoryTransactionDetailModelsFromDomain creates detail models in line order.
func InventoryTransactionDetailModelsFromDomain(tx *inventory.InventoryTransaction) []InventoryTransactionDetailModel {
	out := make([]InventoryTransactionDetailModel, len(tx.Lines))
	for i, l := range tx.Lines {
		out[i] = InventoryTransactionDetailModel{
			ID:            l.ID,
			TransactionID: tx.ID,
			LineNo:        i + 1,
			MaterialID:    l.Item.MaterialID,
			ProductID:     l.Item.ProductID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
		}
	}
	return out
}
