package cache

import (
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewDedupStore builds the webhook dedup store from configuration. Redis is
// preferred when enabled; a connection failure falls back to the in-memory
// store so webhook intake keeps working on a single replica.
func NewDedupStore(cfg *config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if !cfg.Enabled {
		logger.Info("Using in-memory webhook dedup store")
		return NewInMemoryDedupStore()
	}

	store, err := NewRedisDedupStore(RedisConfig{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory dedup store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryDedupStore()
	}

	logger.Info("Using Redis webhook dedup store", zap.String("addr", cfg.Addr()))
	return store
}
