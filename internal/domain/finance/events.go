package finance

import (
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
)

// AggregateTypeSettlement is the aggregate type for settlement events
const AggregateTypeSettlement = "Settlement"

// EventTypePaymentSettled is published after a settlement commits
const EventTypePaymentSettled = "PaymentSettled"

// PaymentSettledEvent carries the receipt of a committed settlement
type PaymentSettledEvent struct {
	shared.BaseDomainEvent
	Receipt *SettlementReceipt `json:"receipt"`
}

// NewPaymentSettledEvent creates a PaymentSettledEvent
func NewPaymentSettledEvent(receipt *SettlementReceipt) *PaymentSettledEvent {
	return &PaymentSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentSettled, AggregateTypeSettlement, receipt.SettlementID),
		Receipt:         receipt,
	}
}
