package cache

import (
	"context"
	"sync"
	"time"

	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	"github.com/google/uuid"
)

type entry struct {
	snapshot  *appinv.WarehouseBalanceResponse
	expiresAt time.Time
}

// InMemoryBalanceCache is a process-local BalanceCache for single-instance
// deployments and tests. Expired entries are dropped lazily on read.
type InMemoryBalanceCache struct {
	mu          sync.RWMutex
	ttl         time.Duration
	entries     map[uuid.UUID]entry
	generations map[uuid.UUID]int64
	now         func() time.Time
}

// NewInMemoryBalanceCache creates an empty cache
func NewInMemoryBalanceCache(ttl time.Duration) *InMemoryBalanceCache {
	return &InMemoryBalanceCache{
		ttl:         ttl,
		entries:     make(map[uuid.UUID]entry),
		generations: make(map[uuid.UUID]int64),
		now:         time.Now,
	}
}

// Get returns the cached snapshot of a warehouse
func (c *InMemoryBalanceCache) Get(_ context.Context, warehouseID uuid.UUID) (*appinv.WarehouseBalanceResponse, bool) {
	c.mu.RLock()
	e, ok := c.entries[warehouseID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, warehouseID)
		c.mu.Unlock()
		return nil, false
	}
	return cloneSnapshot(e.snapshot), true
}

// Generation returns the invalidation generation of a warehouse
func (c *InMemoryBalanceCache) Generation(_ context.Context, warehouseID uuid.UUID) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[warehouseID], true
}

// Set stores a copy of snapshot unless the warehouse was invalidated after generation was read
func (c *InMemoryBalanceCache) Set(_ context.Context, snapshot *appinv.WarehouseBalanceResponse, generation int64) {
	if snapshot == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[snapshot.WarehouseID] != generation {
		return
	}
	c.entries[snapshot.WarehouseID] = entry{
		snapshot:  cloneSnapshot(snapshot),
		expiresAt: c.now().Add(c.ttl),
	}
}

// Invalidate drops the snapshots of the given warehouses
func (c *InMemoryBalanceCache) Invalidate(_ context.Context, warehouseIDs ...uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range warehouseIDs {
		delete(c.entries, id)
		c.generations[id]++
	}
}

// Len returns the number of stored snapshots, expired ones included
func (c *InMemoryBalanceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cloneSnapshot(s *appinv.WarehouseBalanceResponse) *appinv.WarehouseBalanceResponse {
	out := *s
	out.Items = append([]appinv.BalanceResponse(nil), s.Items...)
	return &out
}

var _ appinv.BalanceCache = (*InMemoryBalanceCache)(nil)
