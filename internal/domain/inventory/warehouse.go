package inventory

import (
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseType restricts which kinds of items a warehouse may hold
type WarehouseType string

const (
	WarehouseTypeMaterial WarehouseType = "NVL"        // raw materials only
	WarehouseTypeProduct  WarehouseType = "THANH_PHAM" // finished goods only
	WarehouseTypeMixed    WarehouseType = "HON_HOP"    // both
)

// IsValid returns true if the warehouse type is known
func (t WarehouseType) IsValid() bool {
	switch t {
	case WarehouseTypeMaterial, WarehouseTypeProduct, WarehouseTypeMixed:
		return true
	}
	return false
}

// Accepts reports whether items of the given kind may be stored in this warehouse type
func (t WarehouseType) Accepts(kind catalog.ItemKind) bool {
	switch t {
	case WarehouseTypeMixed:
		return true
	case WarehouseTypeMaterial:
		return kind == catalog.ItemKindMaterial
	case WarehouseTypeProduct:
		return kind == catalog.ItemKindProduct
	}
	return false
}

// Warehouse is a stock location scoped to a branch
type Warehouse struct {
	shared.BaseAggregateRoot
	shared.BranchScoped
	Code     string
	Name     string
	Type     WarehouseType
	Address  string
	IsActive bool
}

// NewWarehouse creates an active warehouse
func NewWarehouse(branchID uuid.UUID, code, name string, warehouseType WarehouseType) (*Warehouse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.NewValidationError("INVALID_CODE", "warehouse code must be 1-50 characters")
	}
	if strings.TrimSpace(name) == "" || len(name) > 200 {
		return nil, shared.NewValidationError("INVALID_NAME", "warehouse name must be 1-200 characters")
	}
	if !warehouseType.IsValid() {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE_TYPE", "warehouse type %q must be NVL, THANH_PHAM or HON_HOP", warehouseType)
	}
	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchScoped:      shared.BranchScoped{BranchID: branchID},
		Code:              code,
		Name:              strings.TrimSpace(name),
		Type:              warehouseType,
		IsActive:          true,
	}, nil
}

// CheckAccepts returns a validation error when the item kind does not fit the warehouse type
func (w *Warehouse) CheckAccepts(ref catalog.ItemRef) error {
	if w.Type.Accepts(ref.Kind()) {
		return nil
	}
	return shared.NewValidationError("ITEM_TYPE_MISMATCH",
		"warehouse %s (%s) does not accept %s %s", w.Code, w.Type, strings.ToLower(string(ref.Kind())), ref.ID()).
		WithDetail("warehouse_id", w.ID.String()).
		WithDetail("warehouse_type", string(w.Type)).
		WithDetail("item_kind", string(ref.Kind())).
		WithDetail("item_id", ref.ID().String())
}

// Deactivate stops the warehouse from taking part in new transactions
func (w *Warehouse) Deactivate() {
	w.IsActive = false
	w.IncrementVersion()
}
