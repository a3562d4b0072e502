package cache

import (
	apporder "github.com/eventnexus/backend/internal/application/order"
	"github.com/eventnexus/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore creates the webhook idempotency store for the given
// configuration: Redis when enabled and reachable, otherwise the in-process
// store. Falling back is logged but not fatal since the store is only a
// duplicate filter ahead of the status-keyed settlement guard.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) apporder.IdempotencyStore {
	if !cfg.Enabled {
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory idempotency store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore()
	}

	logger.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
	return store
}
