package inventory

import (
	"context"
	"fmt"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// BalanceCacheInvalidationHandler drops cached snapshots of every warehouse an approval touched
type BalanceCacheInvalidationHandler struct {
	cache  BalanceCache
	logger *zap.Logger
}

// NewBalanceCacheInvalidationHandler creates a new BalanceCacheInvalidationHandler
func NewBalanceCacheInvalidationHandler(cache BalanceCache, logger *zap.Logger) *BalanceCacheInvalidationHandler {
	return &BalanceCacheInvalidationHandler{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *BalanceCacheInvalidationHandler) EventTypes() []string {
	return []string{inventory.EventTypeTransactionApproved}
}

// Handle invalidates the snapshots named by a TransactionApprovedEvent
func (h *BalanceCacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	approved, ok := event.(*inventory.TransactionApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeTransactionApproved, event.EventType())
	}
	h.cache.Invalidate(ctx, approved.WarehouseIDs...)
	h.logger.Debug("balance cache invalidated",
		zap.String("code", approved.Code),
		zap.Int("warehouses", len(approved.WarehouseIDs)),
	)
	return nil
}
