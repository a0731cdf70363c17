package inventory

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseRepository persists warehouses
type WarehouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, int64, error)
	Save(ctx context.Context, w *Warehouse) error
}

// BalanceRepository persists per-warehouse item balances
type BalanceRepository interface {
	// Quantities reads committed quantities for the given items; absent rows are reported as zero
	Quantities(ctx context.Context, warehouseID uuid.UUID, items []catalog.ItemRef) (map[catalog.Key]decimal.Decimal, error)
	// GetOrCreateForUpdate returns the balance row for (warehouse, item), inserting a zero row
	// when none exists, and holds a row lock until the transaction ends
	GetOrCreateForUpdate(ctx context.Context, warehouseID uuid.UUID, item catalog.ItemRef) (*InventoryBalance, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]InventoryBalance, error)
	Save(ctx context.Context, b *InventoryBalance) error
}

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	shared.Filter
	Type        TransactionType
	Status      TransactionStatus
	WarehouseID *uuid.UUID
}

// TransactionRepository persists transaction headers with their lines
type TransactionRepository interface {
	Create(ctx context.Context, tx *InventoryTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryTransaction, error)
	// FindByIDForUpdate loads the header under a row lock so two approvals serialize
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*InventoryTransaction, error)
	// UpdateStatus persists status and approval/rejection fields
	UpdateStatus(ctx context.Context, tx *InventoryTransaction) error
	FindAll(ctx context.Context, filter TransactionFilter) ([]InventoryTransaction, int64, error)
}
