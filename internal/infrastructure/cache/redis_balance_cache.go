package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultBalanceKeyPrefix = "erp:balance:"

var errStaleSnapshot = errors.New("balance snapshot is stale")

// RedisBalanceCache keeps warehouse balance snapshots in Redis so every
// instance serves the same view. Redis failures degrade to cache misses.
type RedisBalanceCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisBalanceCache creates a cache over an existing client
func NewRedisBalanceCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisBalanceCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBalanceCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: defaultBalanceKeyPrefix,
		logger:    logger,
	}
}

func (c *RedisBalanceCache) key(warehouseID uuid.UUID) string {
	return c.keyPrefix + warehouseID.String()
}

func (c *RedisBalanceCache) generationKey(warehouseID uuid.UUID) string {
	return c.keyPrefix + "gen:" + warehouseID.String()
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter, key string) (int64, error) {
	gen, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached snapshot of a warehouse
func (c *RedisBalanceCache) Get(ctx context.Context, warehouseID uuid.UUID) (*appinv.WarehouseBalanceResponse, bool) {
	raw, err := c.client.Get(ctx, c.key(warehouseID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("balance cache read failed", zap.String("warehouse_id", warehouseID.String()), zap.Error(err))
		}
		return nil, false
	}
	var snapshot appinv.WarehouseBalanceResponse
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		c.logger.Warn("discarding undecodable balance snapshot", zap.String("warehouse_id", warehouseID.String()), zap.Error(err))
		c.Invalidate(ctx, warehouseID)
		return nil, false
	}
	return &snapshot, true
}

// Generation returns the invalidation generation of a warehouse. It reports
// false when Redis cannot be read, so the caller skips caching.
func (c *RedisBalanceCache) Generation(ctx context.Context, warehouseID uuid.UUID) (int64, bool) {
	gen, err := readGeneration(ctx, c.client, c.generationKey(warehouseID))
	if err != nil {
		c.logger.Warn("balance cache generation read failed", zap.String("warehouse_id", warehouseID.String()), zap.Error(err))
		return 0, false
	}
	return gen, true
}

// Set stores a snapshot for the configured TTL. The write runs under WATCH on
// the generation key and is dropped when an invalidation landed after generation was read.
func (c *RedisBalanceCache) Set(ctx context.Context, snapshot *appinv.WarehouseBalanceResponse, generation int64) {
	if snapshot == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		c.logger.Warn("failed to encode balance snapshot", zap.Error(err))
		return
	}
	genKey := c.generationKey(snapshot.WarehouseID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleSnapshot
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(snapshot.WarehouseID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleSnapshot), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("skipping stale balance snapshot", zap.String("warehouse_id", snapshot.WarehouseID.String()))
	default:
		c.logger.Warn("balance cache write failed", zap.String("warehouse_id", snapshot.WarehouseID.String()), zap.Error(err))
	}
}

// Invalidate drops the snapshots of the given warehouses
func (c *RedisBalanceCache) Invalidate(ctx context.Context, warehouseIDs ...uuid.UUID) {
	if len(warehouseIDs) == 0 {
		return
	}
	keys := make([]string, len(warehouseIDs))
	for i, id := range warehouseIDs {
		keys[i] = c.key(id)
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range warehouseIDs {
			pipe.Incr(ctx, c.generationKey(id))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		c.logger.Warn("balance cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Client returns the underlying Redis client
func (c *RedisBalanceCache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis client
func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

var _ appinv.BalanceCache = (*RedisBalanceCache)(nil)
