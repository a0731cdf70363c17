package production

import (
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeProductionOrder is the aggregate type for production events
const AggregateTypeProductionOrder = "ProductionOrder"

const (
	EventTypeStepAdvanced        = "ProductionStepAdvanced"
	EventTypeProductionCompleted = "ProductionCompleted"
)

// StepAdvancedEvent is raised when a production order moves to a new step
type StepAdvancedEvent struct {
	shared.BaseDomainEvent
	Code     string         `json:"code"`
	FromStep ProductionStep `json:"from_step"`
	ToStep   ProductionStep `json:"to_step"`
}

// ProductionCompletedEvent is raised after the finished goods receipt
type ProductionCompletedEvent struct {
	shared.BaseDomainEvent
	Code         string    `json:"code"`
	SalesOrderID uuid.UUID `json:"sales_order_id"`
	ReceiptTxID  uuid.UUID `json:"receipt_tx_id"`
}
