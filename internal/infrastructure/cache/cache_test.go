package cache

import (
	"context"
	"testing"
	"time"

	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func snapshot(qty int64) *appinv.WarehouseBalanceResponse {
	materialID := uuid.New()
	return &appinv.WarehouseBalanceResponse{
		WarehouseID: uuid.New(),
		Items: []appinv.BalanceResponse{{
			ItemKind:   "MATERIAL",
			MaterialID: &materialID,
			Quantity:   decimal.NewFromInt(qty),
		}},
	}
}

func TestInMemoryBalanceCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set get invalidate", func(t *testing.T) {
		c := NewInMemoryBalanceCache(time.Minute)
		s := snapshot(100)

		_, ok := c.Get(ctx, s.WarehouseID)
		assert.False(t, ok)

		c.Set(ctx, s, 0)
		got, ok := c.Get(ctx, s.WarehouseID)
		require.True(t, ok)
		assert.True(t, got.Items[0].Quantity.Equal(decimal.NewFromInt(100)))

		c.Invalidate(ctx, s.WarehouseID, uuid.New())
		_, ok = c.Get(ctx, s.WarehouseID)
		assert.False(t, ok)
	})

	t.Run("stored snapshot is isolated from caller mutation", func(t *testing.T) {
		c := NewInMemoryBalanceCache(time.Minute)
		s := snapshot(5)
		c.Set(ctx, s, 0)
		s.Items[0].Quantity = decimal.NewFromInt(999)

		got, ok := c.Get(ctx, s.WarehouseID)
		require.True(t, ok)
		assert.True(t, got.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
	})

	t.Run("entries expire", func(t *testing.T) {
		c := NewInMemoryBalanceCache(time.Second)
		now := time.Date(2024, 10, 18, 9, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }
		s := snapshot(1)
		c.Set(ctx, s, 0)

		now = now.Add(999 * time.Millisecond)
		_, ok := c.Get(ctx, s.WarehouseID)
		assert.True(t, ok)

		now = now.Add(time.Millisecond)
		_, ok = c.Get(ctx, s.WarehouseID)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("snapshot read before an invalidation is not stored", func(t *testing.T) {
		c := NewInMemoryBalanceCache(time.Minute)
		s := snapshot(7)

		gen, ok := c.Generation(ctx, s.WarehouseID)
		require.True(t, ok)
		c.Invalidate(ctx, s.WarehouseID)
		c.Set(ctx, s, gen)
		_, ok = c.Get(ctx, s.WarehouseID)
		assert.False(t, ok)

		gen, _ = c.Generation(ctx, s.WarehouseID)
		assert.EqualValues(t, 1, gen)
		c.Set(ctx, s, gen)
		_, ok = c.Get(ctx, s.WarehouseID)
		assert.True(t, ok)
	})

	t.Run("nil snapshot is ignored", func(t *testing.T) {
		c := NewInMemoryBalanceCache(time.Minute)
		c.Set(ctx, nil, 0)
		assert.Equal(t, 0, c.Len())
	})
}

func TestRedisBalanceCache_UnreachableDegradesToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisBalanceCache(client, time.Minute, zap.NewNop())
	defer c.Close()

	ctx := context.Background()
	s := snapshot(10)
	_, ok := c.Generation(ctx, s.WarehouseID)
	assert.False(t, ok, "unreadable generation disables caching")
	assert.NotPanics(t, func() {
		c.Set(ctx, s, 0)
		c.Invalidate(ctx, s.WarehouseID)
		c.Invalidate(ctx)
	})
	_, ok = c.Get(ctx, s.WarehouseID)
	assert.False(t, ok)
	assert.Equal(t, "erp:balance:"+s.WarehouseID.String(), c.key(s.WarehouseID))
	assert.Equal(t, "erp:balance:gen:"+s.WarehouseID.String(), c.generationKey(s.WarehouseID))
}

func TestBalanceCacheFactory(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled redis uses memory", func(t *testing.T) {
		f := NewBalanceCacheFactory(config.RedisConfig{Enabled: false, BalanceCacheTTL: time.Minute})
		c, closeFn, err := f.Create(ctx)
		require.NoError(t, err)
		assert.IsType(t, &InMemoryBalanceCache{}, c)
		assert.NoError(t, closeFn())
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		f := NewBalanceCacheFactory(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}, WithLogger(zap.NewNop()))
		f.pingTimeout = 100 * time.Millisecond
		c, _, err := f.Create(ctx)
		require.NoError(t, err)
		mem, ok := c.(*InMemoryBalanceCache)
		require.True(t, ok)
		assert.Equal(t, defaultBalanceTTL, mem.ttl)
	})

	t.Run("fallback disabled returns the connection error", func(t *testing.T) {
		f := NewBalanceCacheFactory(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}, WithInMemoryFallback(false))
		f.pingTimeout = 100 * time.Millisecond
		c, _, err := f.Create(ctx)
		require.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "127.0.0.1:1")
	})
}
