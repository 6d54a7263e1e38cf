package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pukadigital/content-hub/internal/cache"
	"github.com/pukadigital/content-hub/internal/config"
	"github.com/pukadigital/content-hub/internal/events"
	"github.com/pukadigital/content-hub/internal/logger"
)

const redisPingTimeout = 5 * time.Second

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// SetupCache creates the configured cache backend. A redis backend that
// cannot be reached degrades to the in-process memory cache so the
// service still starts.
func SetupCache(cfg *config.Config, log logger.Logger) (cache.Store, error) {
	if cfg.Content.CacheBackend == "redis" {
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis cache backend unavailable, using memory cache",
				logger.String("redis_address", cfg.Redis.Address),
				logger.Error(err),
			)
			return cache.NewMemory(cfg.Content.CacheTTL), nil
		}

		log.Info("Redis cache backend initialized",
			logger.String("redis_address", cfg.Redis.Address),
		)
		return cache.NewRedis(client, cfg.Content.CacheTTL, log), nil
	}

	return cache.NewMemory(cfg.Content.CacheTTL), nil
}

// SetupEventPublisher creates an optional event publisher if Redis is
// enabled. Returns nil if Redis is disabled or unavailable.
func SetupEventPublisher(cfg *config.Config, log logger.Logger) *events.Publisher {
	if !cfg.Redis.Enabled {
		return nil
	}

	client, err := newRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis not available, events disabled",
			logger.Error(err),
		)
		return nil
	}

	log.Info("Event publisher initialized",
		logger.String("redis_address", cfg.Redis.Address),
	)
	return events.NewPublisher(client, log)
}
