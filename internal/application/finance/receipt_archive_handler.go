package finance

import (
	"context"
	"fmt"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// ReceiptArchive stores rendered settlement receipts
type ReceiptArchive interface {
	Put(ctx context.Context, receipt *finance.SettlementReceipt) (string, error)
}

// ReceiptArchiveHandler archives the receipt of every committed settlement.
// Failures are logged and returned to the bus; the settlement itself stays committed.
type ReceiptArchiveHandler struct {
	archive ReceiptArchive
	logger  *zap.Logger
}

// NewReceiptArchiveHandler creates a new ReceiptArchiveHandler
func NewReceiptArchiveHandler(archive ReceiptArchive, logger *zap.Logger) *ReceiptArchiveHandler {
	return &ReceiptArchiveHandler{archive: archive, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *ReceiptArchiveHandler) EventTypes() []string {
	return []string{finance.EventTypePaymentSettled}
}

// Handle archives the receipt carried by a PaymentSettledEvent
func (h *ReceiptArchiveHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	settled, ok := event.(*finance.PaymentSettledEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			finance.EventTypePaymentSettled, event.EventType())
	}
	key, err := h.archive.Put(ctx, settled.Receipt)
	if err != nil {
		h.logger.Error("failed to archive settlement receipt",
			zap.String("receipt_no", settled.Receipt.ReceiptNo),
			zap.Error(err),
		)
		return fmt.Errorf("archive receipt %s: %w", settled.Receipt.ReceiptNo, err)
	}
	h.logger.Debug("settlement receipt archived",
		zap.String("receipt_no", settled.Receipt.ReceiptNo),
		zap.String("key", key),
	)
	return nil
}
