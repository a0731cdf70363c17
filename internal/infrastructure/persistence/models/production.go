package models

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionOrderModel is the header of a production order.
type ProductionOrderModel struct {
	AggregateModel
	Code                string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	SalesOrderID        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	MaterialWarehouseID uuid.UUID                   `gorm:"type:uuid;not null"`
	ProductWarehouseID  uuid.UUID                   `gorm:"type:uuid;not null"`
	CurrentStep         production.ProductionStep   `gorm:"type:varchar(30);not null"`
	Status              production.ProductionStatus `gorm:"type:varchar(20);not null;index"`
	MaterialIssueTxID   *uuid.UUID                  `gorm:"type:uuid"`
	FinishedGoodsTxID   *uuid.UUID                  `gorm:"type:uuid"`
	StartedAt           *time.Time
	CompletedAt         *time.Time
	CreatedBy           uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToDomain converts the header, its lines and its step logs to a domain ProductionOrder.
func (m *ProductionOrderModel) ToDomain(lines []ProductionOrderLineModel, logs []ProductionStepLogModel) *production.ProductionOrder {
	p := &production.ProductionOrder{
		BaseAggregateRoot:   m.ToAggregateRoot(),
		Code:                m.Code,
		SalesOrderID:        m.SalesOrderID,
		MaterialWarehouseID: m.MaterialWarehouseID,
		ProductWarehouseID:  m.ProductWarehouseID,
		CurrentStep:         m.CurrentStep,
		Status:              m.Status,
		MaterialIssueTxID:   m.MaterialIssueTxID,
		FinishedGoodsTxID:   m.FinishedGoodsTxID,
		StartedAt:           m.StartedAt,
		CompletedAt:         m.CompletedAt,
		CreatedBy:           m.CreatedBy,
	}
	p.Lines = make([]production.ProductionLine, len(lines))
	for i, l := range lines {
		p.Lines[i] = production.ProductionLine{ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity}
	}
	p.StepLogs = make([]production.StepLog, len(logs))
	for i, l := range logs {
		p.StepLogs[i] = l.ToDomain()
	}
	return p
}

// ProductionOrderModelFromDomain creates a header model from a domain ProductionOrder.
func ProductionOrderModelFromDomain(p *production.ProductionOrder) *ProductionOrderModel {
	m := &ProductionOrderModel{
		Code:                p.Code,
		SalesOrderID:        p.SalesOrderID,
		MaterialWarehouseID: p.MaterialWarehouseID,
		ProductWarehouseID:  p.ProductWarehouseID,
		CurrentStep:         p.CurrentStep,
		Status:              p.Status,
		MaterialIssueTxID:   p.MaterialIssueTxID,
		FinishedGoodsTxID:   p.FinishedGoodsTxID,
		StartedAt:           p.StartedAt,
		CompletedAt:         p.CompletedAt,
		CreatedBy:           p.CreatedBy,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ProductionOrderLineModel is one product to manufacture.
type ProductionOrderLineModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductionOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo            int             `gorm:"not null"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductionOrderLineModel) TableName() string {
	return "production_order_lines"
}

// ProductionOrderLineModelsFromDomain creates line models in line order.
func ProductionOrderLineModelsFromDomain(p *production.ProductionOrder) []ProductionOrderLineModel {
	out := make([]ProductionOrderLineModel, len(p.Lines))
	for i, l := range p.Lines {
		out[i] = ProductionOrderLineModel{
			ID:                l.ID,
			ProductionOrderID: p.ID,
			LineNo:            i + 1,
			ProductID:         l.ProductID,
			Quantity:          l.Quantity,
		}
	}
	return out
}

// ProductionStepLogModel is one append-only step change.
type ProductionStepLogModel struct {
	ID                uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	ProductionOrderID uuid.UUID                 `gorm:"type:uuid;not null;index"`
	FromStep          production.ProductionStep `gorm:"type:varchar(30);not null"`
	ToStep            production.ProductionStep `gorm:"type:varchar(30);not null"`
	Note              string                    `gorm:"type:text"`
	CreatedBy         uuid.UUID                 `gorm:"type:uuid"`
	CreatedAt         time.Time                 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductionStepLogModel) TableName() string {
	return "production_step_logs"
}

// ToDomain converts the persistence model to a domain StepLog.
func (m *ProductionStepLogModel) ToDomain() production.StepLog {
	return production.StepLog{
		ID:       m.ID,
		FromStep: m.FromStep,
		ToStep:   m.ToStep,
		Note:     m.Note,
		By:       m.CreatedBy,
		At:       m.CreatedAt,
	}
}

// ProductionStepLogModelFromDomain creates a persistence model for one step log.
func ProductionStepLogModelFromDomain(orderID uuid.UUID, l production.StepLog) ProductionStepLogModel {
	return ProductionStepLogModel{
		ID:                l.ID,
		ProductionOrderID: orderID,
		FromStep:          l.FromStep,
		ToStep:            l.ToStep,
		Note:              l.Note,
		CreatedBy:         l.By,
		CreatedAt:         l.At,
	}
}

// BOMLineModel says how much of one material one unit of a product consumes.
type BOMLineModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bom_product_material,priority:1"`
	MaterialID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bom_product_material,priority:2"`
	QuantityPerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes           string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BOMLineModel) TableName() string {
	return "bom_lines"
}

// ToDomain converts the persistence model to a domain BOMLine.
func (m *BOMLineModel) ToDomain() production.BOMLine {
	return production.BOMLine{
		ID:              m.ID,
		ProductID:       m.ProductID,
		MaterialID:      m.MaterialID,
		QuantityPerUnit: m.QuantityPerUnit,
		Notes:           m.Notes,
	}
}

// BOMLineModelFromDomain creates a persistence model from a domain BOMLine.
func BOMLineModelFromDomain(l *production.BOMLine) *BOMLineModel {
	return &BOMLineModel{
		ID:              l.ID,
		ProductID:       l.ProductID,
		MaterialID:      l.MaterialID,
		QuantityPerUnit: l.QuantityPerUnit,
		Notes:           l.Notes,
	}
}
