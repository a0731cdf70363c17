package inventory

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BalanceCache caches warehouse balance snapshots. Every Invalidate bumps the
// warehouse generation; Set stores a snapshot only while the generation it was
// read under is still current.
type BalanceCache interface {
	Get(ctx context.Context, warehouseID uuid.UUID) (*WarehouseBalanceResponse, bool)
	Generation(ctx context.Context, warehouseID uuid.UUID) (int64, bool)
	Set(ctx context.Context, snapshot *WarehouseBalanceResponse, generation int64)
	Invalidate(ctx context.Context, warehouseIDs ...uuid.UUID)
}

// BalanceService serves per-warehouse stock snapshots
type BalanceService struct {
	warehouseRepo inventory.WarehouseRepository
	balanceRepo   inventory.BalanceRepository
	cache         BalanceCache
	logger        *zap.Logger
}

// NewBalanceService creates a new BalanceService; cache may be nil
func NewBalanceService(warehouseRepo inventory.WarehouseRepository, balanceRepo inventory.BalanceRepository, cache BalanceCache, logger *zap.Logger) *BalanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceService{
		warehouseRepo: warehouseRepo,
		balanceRepo:   balanceRepo,
		cache:         cache,
		logger:        logger,
	}
}

// WarehouseBalance returns the per-item quantities of a warehouse
func (s *BalanceService) WarehouseBalance(ctx context.Context, warehouseID uuid.UUID) (*WarehouseBalanceResponse, error) {
	var generation int64
	cacheable := false
	if s.cache != nil {
		if snapshot, ok := s.cache.Get(ctx, warehouseID); ok {
			return snapshot, nil
		}
		generation, cacheable = s.cache.Generation(ctx, warehouseID)
	}
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	balances, err := s.balanceRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	snapshot := &WarehouseBalanceResponse{
		WarehouseID: warehouseID,
		Items:       make([]BalanceResponse, 0, len(balances)),
	}
	for i := range balances {
		snapshot.Items = append(snapshot.Items, ToBalanceResponse(&balances[i]))
	}
	if cacheable {
		s.cache.Set(ctx, snapshot, generation)
	}
	return snapshot, nil
}
