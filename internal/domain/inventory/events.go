package inventory

import (
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeInventoryTransaction is the aggregate type for transaction events
const AggregateTypeInventoryTransaction = "InventoryTransaction"

// Event type constants
const (
	EventTypeTransactionCreated  = "InventoryTransactionCreated"
	EventTypeTransactionApproved = "InventoryTransactionApproved"
	EventTypeTransactionRejected = "InventoryTransactionRejected"
)

// TransactionCreatedEvent is raised when a transaction is recorded in PENDING
type TransactionCreatedEvent struct {
	shared.BaseDomainEvent
	Code      string          `json:"code"`
	TxType    TransactionType `json:"tx_type"`
	LineCount int             `json:"line_count"`
}

// NewTransactionCreatedEvent creates a TransactionCreatedEvent
func NewTransactionCreatedEvent(t *InventoryTransaction) *TransactionCreatedEvent {
	return &TransactionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCreated, AggregateTypeInventoryTransaction, t.ID),
		Code:            t.Code,
		TxType:          t.Type,
		LineCount:       len(t.Lines),
	}
}

// TransactionApprovedEvent is raised once balances have been moved
type TransactionApprovedEvent struct {
	shared.BaseDomainEvent
	Code          string          `json:"code"`
	TxType        TransactionType `json:"tx_type"`
	WarehouseIDs  []uuid.UUID     `json:"warehouse_ids"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// NewTransactionApprovedEvent creates a TransactionApprovedEvent
func NewTransactionApprovedEvent(t *InventoryTransaction) *TransactionApprovedEvent {
	total := decimal.Zero
	for _, l := range t.Lines {
		total = total.Add(l.Quantity)
	}
	return &TransactionApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionApproved, AggregateTypeInventoryTransaction, t.ID),
		Code:            t.Code,
		TxType:          t.Type,
		WarehouseIDs:    t.WarehouseIDs(),
		TotalQuantity:   total,
	}
}

// TransactionRejectedEvent is raised when a pending transaction is refused
type TransactionRejectedEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// NewTransactionRejectedEvent creates a TransactionRejectedEvent
func NewTransactionRejectedEvent(t *InventoryTransaction) *TransactionRejectedEvent {
	return &TransactionRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionRejected, AggregateTypeInventoryTransaction, t.ID),
		Code:            t.Code,
		Reason:          t.RejectReason,
	}
}
