package production

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest starts production for a sales order
type CreateProductionOrderRequest struct {
	SalesOrderID        uuid.UUID `json:"sales_order_id" binding:"required"`
	MaterialWarehouseID uuid.UUID `json:"material_warehouse_id" binding:"required"`
	ProductWarehouseID  uuid.UUID `json:"product_warehouse_id" binding:"required"`
}

// AdvanceStepRequest names the step to move to
type AdvanceStepRequest struct {
	NextStep string `json:"next_step" binding:"required"`
	Note     string `json:"note" binding:"max=500"`
}

// BOMLineRequest is one material of a bill of materials
type BOMLineRequest struct {
	MaterialID      uuid.UUID       `json:"material_id" binding:"required"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit" binding:"required,decimal_positive"`
	Notes           string          `json:"notes" binding:"max=200"`
}

// UpsertBOMRequest sets material quantities for one product
type UpsertBOMRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Lines     []BOMLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// BOMLineResponse represents a BOM line in API responses
type BOMLineResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	MaterialID      uuid.UUID       `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	Notes           string          `json:"notes,omitempty"`
}

// ProductionLineResponse is a product to manufacture
type ProductionLineResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// StepLogResponse is one entry of the step history
type StepLogResponse struct {
	FromStep string    `json:"from_step"`
	ToStep   string    `json:"to_step"`
	Note     string    `json:"note,omitempty"`
	By       uuid.UUID `json:"by"`
	At       time.Time `json:"at"`
}

// ProductionOrderResponse represents a production order in API responses
type ProductionOrderResponse struct {
	ID                  uuid.UUID                `json:"id"`
	Code                string                   `json:"code"`
	SalesOrderID        uuid.UUID                `json:"sales_order_id"`
	MaterialWarehouseID uuid.UUID                `json:"material_warehouse_id"`
	ProductWarehouseID  uuid.UUID                `json:"product_warehouse_id"`
	CurrentStep         string                   `json:"current_step"`
	Status              string                   `json:"status"`
	MaterialIssueTxID   *uuid.UUID               `json:"material_issue_tx_id,omitempty"`
	FinishedGoodsTxID   *uuid.UUID               `json:"finished_goods_tx_id,omitempty"`
	StartedAt           *time.Time               `json:"started_at,omitempty"`
	CompletedAt         *time.Time               `json:"completed_at,omitempty"`
	Lines               []ProductionLineResponse `json:"lines"`
	StepLogs            []StepLogResponse        `json:"step_logs"`
	CreatedBy           uuid.UUID                `json:"created_by"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
}

// MaterialRequirementResponse is the planned quantity of one material next to current stock
type MaterialRequirementResponse struct {
	MaterialID uuid.UUID       `json:"material_id"`
	Required   decimal.Decimal `json:"required"`
	Available  decimal.Decimal `json:"available"`
	Shortage   decimal.Decimal `json:"shortage"`
}

// MaterialRequirementsResponse is the material plan of a production order
type MaterialRequirementsResponse struct {
	ProductionOrderID  uuid.UUID                     `json:"production_order_id"`
	WarehouseID        uuid.UUID                     `json:"warehouse_id"`
	Materials          []MaterialRequirementResponse `json:"materials"`
	ProductsWithoutBOM []uuid.UUID                   `json:"products_without_bom,omitempty"`
}

// ToProductionOrderResponse converts a production order to its response
func ToProductionOrderResponse(p *production.ProductionOrder) ProductionOrderResponse {
	lines := make([]ProductionLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, ProductionLineResponse{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	logs := make([]StepLogResponse, 0, len(p.StepLogs))
	for _, l := range p.StepLogs {
		logs = append(logs, StepLogResponse{
			FromStep: string(l.FromStep),
			ToStep:   string(l.ToStep),
			Note:     l.Note,
			By:       l.By,
			At:       l.At,
		})
	}
	return ProductionOrderResponse{
		ID:                  p.ID,
		Code:                p.Code,
		SalesOrderID:        p.SalesOrderID,
		MaterialWarehouseID: p.MaterialWarehouseID,
		ProductWarehouseID:  p.ProductWarehouseID,
		CurrentStep:         string(p.CurrentStep),
		Status:              string(p.Status),
		MaterialIssueTxID:   p.MaterialIssueTxID,
		FinishedGoodsTxID:   p.FinishedGoodsTxID,
		StartedAt:           p.StartedAt,
		CompletedAt:         p.CompletedAt,
		Lines:               lines,
		StepLogs:            logs,
		CreatedBy:           p.CreatedBy,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ToBOMLineResponse converts a BOM line to its response
func ToBOMLineResponse(b *production.BOMLine) BOMLineResponse {
	return BOMLineResponse{
		ID:              b.ID,
		ProductID:       b.ProductID,
		MaterialID:      b.MaterialID,
		QuantityPerUnit: b.QuantityPerUnit,
		Notes:           b.Notes,
	}
}
