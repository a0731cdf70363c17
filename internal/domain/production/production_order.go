package production

import (
	"strings"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionLine is a product to manufacture
type ProductionLine struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// StepLog records one step change
type StepLog struct {
	ID       uuid.UUID
	FromStep ProductionStep
	ToStep   ProductionStep
	Note     string
	By       uuid.UUID
	At       time.Time
}

// ProductionOrder (lệnh sản xuất) drives a sales order through the production line.
// Steps only move forward; leaving MATERIAL_IMPORT requires the material issue to be recorded,
// and completion requires the finished goods receipt.
type ProductionOrder struct {
	shared.BaseAggregateRoot
	Code                string
	SalesOrderID        uuid.UUID
	Lines               []ProductionLine
	MaterialWarehouseID uuid.UUID
	ProductWarehouseID  uuid.UUID
	CurrentStep         ProductionStep
	Status              ProductionStatus
	MaterialIssueTxID   *uuid.UUID
	FinishedGoodsTxID   *uuid.UUID
	StartedAt           *time.Time
	CompletedAt         *time.Time
	StepLogs            []StepLog
	CreatedBy           uuid.UUID
}

// NewProductionOrder creates a pending production order at MATERIAL_IMPORT
func NewProductionOrder(code string, salesOrderID uuid.UUID, lines []ProductionLine, materialWarehouseID, productWarehouseID uuid.UUID, createdBy uuid.UUID) (*ProductionOrder, error) {
	if salesOrderID == uuid.Nil {
		return nil, shared.NewValidationError("SALES_ORDER_REQUIRED", "production order requires a sales order")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("NO_LINES", "sales order has no product lines to produce")
	}
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return nil, shared.NewValidationError("INVALID_QUANTITY", "production quantity must be positive")
		}
	}
	if materialWarehouseID == uuid.Nil || productWarehouseID == uuid.Nil {
		return nil, shared.NewValidationError("WAREHOUSE_REQUIRED", "production order requires a material warehouse and a finished goods warehouse")
	}
	return &ProductionOrder{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		Code:                code,
		SalesOrderID:        salesOrderID,
		Lines:               lines,
		MaterialWarehouseID: materialWarehouseID,
		ProductWarehouseID:  productWarehouseID,
		CurrentStep:         StepMaterialImport,
		Status:              ProductionStatusPending,
		CreatedBy:           createdBy,
	}, nil
}

// MaterialIssued reports whether the material issue transaction exists
func (p *ProductionOrder) MaterialIssued() bool {
	return p.MaterialIssueTxID != nil
}

// ProductIDs lists the distinct products of the order
func (p *ProductionOrder) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, l := range p.Lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

// ReadyForMaterialIssue reports whether materials may be issued now
func (p *ProductionOrder) ReadyForMaterialIssue() error {
	if err := p.ensureOpen(); err != nil {
		return err
	}
	if p.CurrentStep != StepMaterialImport {
		return shared.NewConflictError("INVALID_STEP", "materials are issued at %s, order %s is at %s", StepMaterialImport, p.Code, p.CurrentStep)
	}
	if p.MaterialIssued() {
		return shared.NewConflictError("MATERIAL_ALREADY_ISSUED", "materials for order %s were already issued", p.Code)
	}
	return nil
}

// RecordMaterialIssue links the material issue transaction and starts production
func (p *ProductionOrder) RecordMaterialIssue(txID, by uuid.UUID) error {
	if err := p.ReadyForMaterialIssue(); err != nil {
		return err
	}
	now := time.Now()
	p.MaterialIssueTxID = &txID
	p.Status = ProductionStatusInProgress
	p.StartedAt = &now
	p.log(p.CurrentStep, p.CurrentStep, "material issue recorded", by)
	p.IncrementVersion()
	return nil
}

// AdvanceTo moves to the next step
func (p *ProductionOrder) AdvanceTo(target ProductionStep, by uuid.UUID, note string) error {
	if err := p.ensureOpen(); err != nil {
		return err
	}
	if target.Index() < 0 {
		return shared.NewValidationError("INVALID_STEP", "unknown production step %q", target)
	}
	if !p.CurrentStep.CanAdvanceTo(target) {
		return shared.NewConflictError("INVALID_STEP_TRANSITION", "order %s cannot move from %s to %s", p.Code, p.CurrentStep, target).
			WithDetail("current_step", string(p.CurrentStep))
	}
	if p.CurrentStep == StepMaterialImport && !p.MaterialIssued() {
		return shared.NewConflictError("MATERIAL_NOT_ISSUED", "order %s cannot leave %s before materials are issued", p.Code, StepMaterialImport)
	}
	from := p.CurrentStep
	p.CurrentStep = target
	p.log(from, target, note, by)
	p.IncrementVersion()
	p.AddDomainEvent(&StepAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStepAdvanced, AggregateTypeProductionOrder, p.ID),
		Code:            p.Code,
		FromStep:        from,
		ToStep:          target,
	})
	return nil
}

// ReadyForReceipt reports whether finished goods may be received now
func (p *ProductionOrder) ReadyForReceipt() error {
	if err := p.ensureOpen(); err != nil {
		return err
	}
	if p.CurrentStep != StepWarehouseImport {
		return shared.NewConflictError("INVALID_STEP", "order %s must reach %s before finished goods are received", p.Code, StepWarehouseImport)
	}
	return nil
}

// Complete records the finished goods receipt and closes the order
func (p *ProductionOrder) Complete(receiptTxID, by uuid.UUID) error {
	if err := p.ReadyForReceipt(); err != nil {
		return err
	}
	now := time.Now()
	p.FinishedGoodsTxID = &receiptTxID
	p.Status = ProductionStatusCompleted
	p.CompletedAt = &now
	p.log(p.CurrentStep, p.CurrentStep, "finished goods received", by)
	p.IncrementVersion()
	p.AddDomainEvent(&ProductionCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductionCompleted, AggregateTypeProductionOrder, p.ID),
		Code:            p.Code,
		SalesOrderID:    p.SalesOrderID,
		ReceiptTxID:     receiptTxID,
	})
	return nil
}

func (p *ProductionOrder) ensureOpen() error {
	if p.Status == ProductionStatusCompleted {
		return shared.NewConflictError("PRODUCTION_COMPLETED", "production order %s is already completed", p.Code)
	}
	return nil
}

func (p *ProductionOrder) log(from, to ProductionStep, note string, by uuid.UUID) {
	p.StepLogs = append(p.StepLogs, StepLog{
		ID:       uuid.New(),
		FromStep: from,
		ToStep:   to,
		Note:     strings.TrimSpace(note),
		By:       by,
		At:       time.Now(),
	})
}
