package cache

import (
	"context"
	"fmt"
	"time"

	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultBalanceTTL = 30 * time.Second

// BalanceCacheFactory builds the balance cache the configuration asks for
type BalanceCacheFactory struct {
	cfg                   config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	pingTimeout           time.Duration
}

// FactoryOption configures a BalanceCacheFactory
type FactoryOption func(*BalanceCacheFactory)

// WithLogger sets the factory logger
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *BalanceCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// a process-local cache. Enabled by default.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *BalanceCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewBalanceCacheFactory creates a new factory
func NewBalanceCacheFactory(cfg config.RedisConfig, opts ...FactoryOption) *BalanceCacheFactory {
	f := &BalanceCacheFactory{
		cfg:                   cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		pingTimeout:           5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *BalanceCacheFactory) ttl() time.Duration {
	if f.cfg.BalanceCacheTTL > 0 {
		return f.cfg.BalanceCacheTTL
	}
	return defaultBalanceTTL
}

// CreateRedisCache connects to Redis and returns a cache over it
func (f *BalanceCacheFactory) CreateRedisCache(ctx context.Context) (*RedisBalanceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.cfg.Addr,
		Password: f.cfg.Password,
		DB:       f.cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", f.cfg.Addr, err)
	}
	return NewRedisBalanceCache(client, f.ttl(), f.logger), nil
}

// Create returns the Redis cache when enabled and reachable, otherwise the
// in-memory cache. The returned close func releases the Redis client.
func (f *BalanceCacheFactory) Create(ctx context.Context) (appinv.BalanceCache, func() error, error) {
	noop := func() error { return nil }
	if !f.cfg.Enabled {
		f.logger.Info("Redis disabled, using in-memory balance cache")
		return NewInMemoryBalanceCache(f.ttl()), noop, nil
	}

	c, err := f.CreateRedisCache(ctx)
	if err == nil {
		f.logger.Info("using Redis balance cache", zap.String("addr", f.cfg.Addr), zap.Duration("ttl", f.ttl()))
		return c, c.Close, nil
	}
	if !f.allowInMemoryFallback {
		return nil, noop, err
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory balance cache", zap.Error(err))
	return NewInMemoryBalanceCache(f.ttl()), noop, nil
}
