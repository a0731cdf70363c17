package inventory

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionItemRequest is one line of a transaction; exactly one of MaterialID and ProductID is set
type TransactionItemRequest struct {
	MaterialID *uuid.UUID       `json:"material_id"`
	ProductID  *uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal  `json:"quantity" binding:"required,decimal_positive"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
}

// CreateTransactionRequest is the input of createInventoryTransaction
type CreateTransactionRequest struct {
	Type            string                   `json:"type" binding:"required,oneof=NHAP XUAT CHUYEN"`
	FromWarehouseID *uuid.UUID               `json:"from_warehouse_id"`
	ToWarehouseID   *uuid.UUID               `json:"to_warehouse_id"`
	Items           []TransactionItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes           string                   `json:"notes" binding:"max=500"`
}

// RejectTransactionRequest carries the rejection reason
type RejectTransactionRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// TransactionLineResponse represents a transaction line in API responses
type TransactionLineResponse struct {
	ID         uuid.UUID        `json:"id"`
	ItemKind   string           `json:"item_kind"`
	MaterialID *uuid.UUID       `json:"material_id,omitempty"`
	ProductID  *uuid.UUID       `json:"product_id,omitempty"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
}

// TransactionResponse represents an inventory transaction in API responses
type TransactionResponse struct {
	ID                uuid.UUID                 `json:"id"`
	Code              string                    `json:"code"`
	Type              string                    `json:"type"`
	Status            string                    `json:"status"`
	FromWarehouseID   *uuid.UUID                `json:"from_warehouse_id,omitempty"`
	ToWarehouseID     *uuid.UUID                `json:"to_warehouse_id,omitempty"`
	Notes             string                    `json:"notes,omitempty"`
	ProductionOrderID *uuid.UUID                `json:"production_order_id,omitempty"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	CreatedBy         uuid.UUID                 `json:"created_by"`
	ApprovedBy        *uuid.UUID                `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time                `json:"approved_at,omitempty"`
	RejectedBy        *uuid.UUID                `json:"rejected_by,omitempty"`
	RejectedAt        *time.Time                `json:"rejected_at,omitempty"`
	RejectReason      string                    `json:"reject_reason,omitempty"`
	Lines             []TransactionLineResponse `json:"lines"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// TransactionListFilter represents filter options for transaction listings
type TransactionListFilter struct {
	Type        string     `form:"type" binding:"omitempty,oneof=NHAP XUAT CHUYEN"`
	Status      string     `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
}

// BalanceResponse is one row of a warehouse balance snapshot
type BalanceResponse struct {
	ItemKind   string          `json:"item_kind"`
	MaterialID *uuid.UUID      `json:"material_id,omitempty"`
	ProductID  *uuid.UUID      `json:"product_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// WarehouseBalanceResponse is the per-item quantity snapshot of a warehouse
type WarehouseBalanceResponse struct {
	WarehouseID uuid.UUID         `json:"warehouse_id"`
	Items       []BalanceResponse `json:"items"`
}

// CreateWarehouseRequest is the input for creating a warehouse
type CreateWarehouseRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Code     string    `json:"code" binding:"required,max=50"`
	Name     string    `json:"name" binding:"required,max=200"`
	Type     string    `json:"type" binding:"required,oneof=NVL THANH_PHAM HON_HOP"`
	Address  string    `json:"address" binding:"max=500"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	BranchID  uuid.UUID `json:"branch_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToLines converts request items to domain lines
func ToLines(items []TransactionItemRequest) ([]inventory.TransactionLine, error) {
	lines := make([]inventory.TransactionLine, 0, len(items))
	for _, it := range items {
		ref := catalog.ItemRef{MaterialID: it.MaterialID, ProductID: it.ProductID}
		price := decimal.NullDecimal{}
		if it.UnitPrice != nil {
			price = decimal.NewNullDecimal(*it.UnitPrice)
		}
		l, err := inventory.NewTransactionLine(ref, it.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// ToTransactionResponse converts a domain transaction to its response
func ToTransactionResponse(t *inventory.InventoryTransaction) TransactionResponse {
	lines := make([]TransactionLineResponse, 0, len(t.Lines))
	for _, l := range t.Lines {
		lr := TransactionLineResponse{
			ID:         l.ID,
			ItemKind:   string(l.Item.Kind()),
			MaterialID: l.Item.MaterialID,
			ProductID:  l.Item.ProductID,
			Quantity:   l.Quantity,
		}
		if l.UnitPrice.Valid {
			price := l.UnitPrice.Decimal
			lr.UnitPrice = &price
		}
		lines = append(lines, lr)
	}
	return TransactionResponse{
		ID:                t.ID,
		Code:              t.Code,
		Type:              string(t.Type),
		Status:            string(t.Status),
		FromWarehouseID:   t.FromWarehouseID,
		ToWarehouseID:     t.ToWarehouseID,
		Notes:             t.Notes,
		ProductionOrderID: t.ProductionOrderID,
		TotalAmount:       t.TotalAmount(),
		CreatedBy:         t.CreatedBy,
		ApprovedBy:        t.ApprovedBy,
		ApprovedAt:        t.ApprovedAt,
		RejectedBy:        t.RejectedBy,
		RejectedAt:        t.RejectedAt,
		RejectReason:      t.RejectReason,
		Lines:             lines,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// ToBalanceResponse converts a balance row to its response
func ToBalanceResponse(b *inventory.InventoryBalance) BalanceResponse {
	return BalanceResponse{
		ItemKind:   string(b.Item.Kind()),
		MaterialID: b.Item.MaterialID,
		ProductID:  b.Item.ProductID,
		Quantity:   b.Quantity,
		UpdatedAt:  b.UpdatedAt,
	}
}

// ToWarehouseResponse converts a warehouse to its response
func ToWarehouseResponse(w *inventory.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		BranchID:  w.BranchID,
		Code:      w.Code,
		Name:      w.Name,
		Type:      string(w.Type),
		Address:   w.Address,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
